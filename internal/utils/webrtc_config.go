package utils

import (
	"github.com/pion/webrtc/v3"

	"github.com/Jaideep0802/CodePair/internal/config"
)

// ICEServers builds the server list browsers should use for their peer
// connections. The server itself never terminates media; it only hands
// this out so clients stop hardcoding public STUN hosts.
func ICEServers(cfg *config.Config) []webrtc.ICEServer {
	var servers []webrtc.ICEServer
	for _, stun := range cfg.STUNServers {
		servers = append(servers, webrtc.ICEServer{URLs: []string{stun}})
	}
	if cfg.TURNURL != "" {
		servers = append(servers, webrtc.ICEServer{
			URLs:       []string{cfg.TURNURL},
			Username:   cfg.TURNUsername,
			Credential: cfg.TURNPassword,
		})
	}
	return servers
}
