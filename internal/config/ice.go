package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pion/webrtc/v4"
)

var (
	ErrICEServerNoURLs       = errors.New("no urls")
	ErrICEServerBadScheme    = errors.New("unsupported url scheme")
	ErrICEServerMissingCreds = errors.New("turn server requires username and credential")
)

// ICEServerConfig is one entry of the ice_servers config list.
type ICEServerConfig struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

// ParseICEServers trims and validates the configured servers.
func ParseICEServers(in []ICEServerConfig) ([]webrtc.ICEServer, error) {
	out := make([]webrtc.ICEServer, 0, len(in))
	for i, server := range in {
		urls := make([]string, 0, len(server.URLs))
		for _, url := range server.URLs {
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			urls = append(urls, url)
		}

		pcServer := webrtc.ICEServer{
			URLs:     urls,
			Username: strings.TrimSpace(server.Username),
		}
		if strings.TrimSpace(server.Credential) != "" {
			pcServer.Credential = server.Credential
		}
		if err := validateICEServer(pcServer); err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, pcServer)
	}
	return out, nil
}

func validateICEServer(server webrtc.ICEServer) error {
	if len(server.URLs) == 0 {
		return ErrICEServerNoURLs
	}
	for _, url := range server.URLs {
		scheme, _, _ := strings.Cut(url, ":")
		switch strings.ToLower(scheme) {
		case "stun", "stuns":
		case "turn", "turns":
			if server.Username == "" || server.Credential == nil {
				return fmt.Errorf("%s: %w", url, ErrICEServerMissingCreds)
			}
		default:
			return fmt.Errorf("%s: %w", url, ErrICEServerBadScheme)
		}
	}
	return nil
}
