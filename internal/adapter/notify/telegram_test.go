package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semmidev/bucketsync/internal/domain"
)

func TestFormatNotification(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Notification
		want string
	}{
		{
			name: "success gets a check mark",
			in: domain.Notification{
				Title:    "Connection Test Succeeded!",
				Message:  "Everything seems properly set up!",
				Severity: domain.SeveritySuccess,
			},
			want: "✅ Connection Test Succeeded!\n\nEverything seems properly set up!",
		},
		{
			name: "danger gets a cross mark",
			in: domain.Notification{
				Title:    "Connection Test Failed!",
				Message:  "credentials rejected by remote store",
				Severity: domain.SeverityDanger,
			},
			want: "❌ Connection Test Failed!\n\ncredentials rejected by remote store",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNotification(tt.in))
		})
	}
}
