package tui

import (
	"strings"
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/models"
)

// resetTokenModel shows one generated token. The token lives only in this
// model and is gone once the operator leaves the view.
type resetTokenModel struct {
	user       models.User
	loading    bool
	generating bool
	result     *service.ResetTokenResult
}

func (m resetTokenModel) View(spin string) string {
	if m.loading {
		return renderPage("Reset token", spin+" Loading...", "esc back")
	}

	var b strings.Builder
	b.WriteString("User: " + m.user.Username + " <" + m.user.Email + ">\n\n")

	switch {
	case m.generating:
		b.WriteString(spin + " Generating...\n")
	case m.result != nil:
		b.WriteString(tokenStyle.Render(m.result.Token) + "\n\n")
		b.WriteString("Expires: " + m.result.ExpiresAt.Local().Format(time.DateTime) + "\n\n")
		b.WriteString(warningStyle.Render(m.result.Warning) + "\n")
		return renderPage("Reset token", b.String(), "c copy  esc back")
	default:
		b.WriteString("Press enter to issue a one-time password reset token.\n")
	}

	return renderPage("Reset token", b.String(), "enter generate  esc back")
}
