package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLead() Lead {
	return Lead{
		FormType: ModeAppointment,
		Service:  ServiceSales,
		Name:     "Dana",
		Email:    "dana@example.com",
		Message:  "Tell me more",
		Date:     "2026-11-02",
		Time:     "10:00",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Lead)
		wantErr string
	}{
		{"complete", func(*Lead) {}, ""},
		{"missing name", func(l *Lead) { l.Name = "  " }, "name"},
		{"missing several", func(l *Lead) { l.Email = ""; l.Service = "" }, "email, service"},
		{"missing message", func(l *Lead) { l.Message = "" }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLead()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSubmitLead_Success(t *testing.T) {
	var got Lead
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contact", r.URL.Path)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"created","id":42,"mode":"appointment",
			"saved":{"callback_date":"2026-11-02","callback_time_start":"10:00","callback_time_end":null}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, nil)
	ack, err := c.SubmitLead(context.Background(), validLead())
	require.NoError(t, err)

	assert.Equal(t, "created", ack.Message)
	assert.Equal(t, int64(42), ack.ID)
	assert.Equal(t, ModeAppointment, ack.Mode)
	require.NotNil(t, ack.Saved.CallbackDate)
	assert.Equal(t, "2026-11-02", *ack.Saved.CallbackDate)
	assert.Nil(t, ack.Saved.CallbackTimeEnd)

	assert.Equal(t, validLead(), got)
}

func TestSubmitLead_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			timeout: time.Second,
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
			},
			timeout: time.Second,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
			timeout: 50 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(srv.URL, tt.timeout, nil)
			ack, err := c.SubmitLead(context.Background(), validLead())
			assert.Nil(t, ack)
			assert.ErrorIs(t, err, ErrSubmission)
		})
	}
}

func TestSubmitLead_InvalidLeadNeverSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.SubmitLead(context.Background(), Lead{Name: "x"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.False(t, called)
}

func TestSubmitLead_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, time.Second, nil)
	_, err := c.SubmitLead(ctx, validLead())
	assert.ErrorIs(t, err, ErrSubmission)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
