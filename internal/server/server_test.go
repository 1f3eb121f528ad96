package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/koptenko/caseshop_bot/pkg/errors"
	"github.com/koptenko/caseshop_bot/pkg/logger"
)

type recordingNotifier struct {
	admin []string
}

func (n *recordingNotifier) NotifyAdmins(text string) { n.admin = append(n.admin, text) }
func (n *recordingNotifier) NotifyUser(int64, string) {}
func (n *recordingNotifier) PostToChannel(string)     {}

func TestRespondFulfillmentFailure(t *testing.T) {
	logger.Init("error", false)

	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantBody  string
		wantAlert bool
	}{
		{"replayed notification", errors.New(errors.ErrCodeInvalidState, "order already completed"), 200, "YES", false},
		{"key pool exhausted", errors.New(errors.ErrCodeResourceExhausted, "no unused keys for plan"), 200, "YES", true},
		{"amount mismatch", errors.New(errors.ErrCodeValidationFailed, "paid amount does not match"), 200, "YES", false},
		{"storage failure", errors.New(errors.ErrCodeInternalError, "database unavailable"), 400, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			s := &Server{notifier: notifier}
			rec := httptest.NewRecorder()

			s.respondFulfillmentFailure(rec, 7, 150.0, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && strings.TrimSpace(rec.Body.String()) != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantAlert != (len(notifier.admin) > 0) {
				t.Errorf("admin alerts = %v, want alert = %v", notifier.admin, tt.wantAlert)
			}
		})
	}
}
