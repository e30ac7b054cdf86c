package dto

import "quiz-hub/internal/config"

// RemoteConfigRequest replaces the remote connection settings used by the
// admin panel.
type RemoteConfigRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// RemoteConfigResponse shows the connection settings without the password.
type RemoteConfigResponse struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Database    string `json:"database"`
	User        string `json:"user"`
	HasPassword bool   `json:"has_password"`
}

func NewRemoteConfigResponse(cfg config.RemoteConfig) RemoteConfigResponse {
	return RemoteConfigResponse{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Database:    cfg.Database,
		User:        cfg.User,
		HasPassword: cfg.Password != "",
	}
}
