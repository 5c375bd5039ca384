package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/mythicavalon/EchoLang/core"
)

// mapRESTError classifies a discordgo error into the core platform error taxonomy.
// The original error stays in the chain so callers can still inspect the REST response.
func mapRESTError(operation string, err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownUser,
				discordgo.ErrCodeUnknownMember:
				return fmt.Errorf("%s: %w: %w", operation, core.ErrNotFound, err)
			case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
				return fmt.Errorf("%s: %w: %w", operation, core.ErrPermissionDenied, err)
			}
		}
		if restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusNotFound:
				return fmt.Errorf("%s: %w: %w", operation, core.ErrNotFound, err)
			case http.StatusForbidden, http.StatusUnauthorized:
				return fmt.Errorf("%s: %w: %w", operation, core.ErrPermissionDenied, err)
			}
		}
	}
	return fmt.Errorf("%s: %w: %w", operation, core.ErrTransientPlatform, err)
}

func isNotFound(err error) bool {
	return core.IsNotFoundError(err)
}
