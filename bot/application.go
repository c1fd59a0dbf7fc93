package bot

import (
	"encoding/json"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// InstallParams are the default scopes and permissions an application asks
// for when it is added to a server.
type InstallParams struct {
	Scopes      []string `json:"scopes"`
	Permissions int64    `json:"permissions,string"`
}

// InstallParams fetches the application's install parameters. It returns nil
// when the application has none configured.
func (b *Bot) InstallParams() (*InstallParams, error) {
	body, err := b.Client.Request("GET", discordgo.EndpointApplication("@me"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch application")
	}
	return decodeInstallParams(body)
}

func decodeInstallParams(body []byte) (*InstallParams, error) {
	var app struct {
		InstallParams *InstallParams `json:"install_params"`
	}
	if err := json.Unmarshal(body, &app); err != nil {
		return nil, errors.Wrap(err, "could not decode application")
	}
	return app.InstallParams, nil
}
