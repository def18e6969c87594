package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageHeaders(t *testing.T) {
	service := NewEmailService("smtp.example.com", "587", "noreply@futura.test", "app-password")

	message := string(service.message("promoter@futura.test", "Invitation issued", "<p>Your invitation is ready</p>"))

	require.Contains(t, message, "From: noreply@futura.test\r\n")
	require.Contains(t, message, "To: promoter@futura.test\r\n")
	require.Contains(t, message, "Subject: Invitation issued\r\n")
	require.Contains(t, message, "MIME-Version: 1.0\r\n")
	require.Contains(t, message, "Content-Type: text/html; charset=UTF-8\r\n")

	// Body sits after the blank line closing the header block
	_, body, found := strings.Cut(message, "\r\n\r\n")
	require.True(t, found)
	require.Equal(t, "<p>Your invitation is ready</p>", body)
}
