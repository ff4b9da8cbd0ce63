package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"realitycheck/internal/llm"
	"realitycheck/internal/model"
	"realitycheck/internal/service"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// blockingClient holds every call until release is closed
type blockingClient struct {
	release chan struct{}
}

func (b *blockingClient) Name() string { return "blocking" }

func (b *blockingClient) Generate(ctx context.Context, prompt string, params llm.Params) (string, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return llm.NewMockClient().Generate(ctx, prompt, params)
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	return dialWith(t, llm.NewMockClient())
}

func dialWith(t *testing.T, client llm.Client) *websocket.Conn {
	t.Helper()
	svc := service.NewAnalysisService(client, llm.Params{Model: "mock"}, nil, nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(NewHandler(svc).AnalyzeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func TestAnalyzeWSSuccess(t *testing.T) {
	conn := dial(t)

	if err := conn.WriteJSON(model.AnalyzeRequest{Product: "Notion"}); err != nil {
		t.Fatal(err)
	}

	if msg := readMessage(t, conn); msg.Type != MsgAnalysisStarted {
		t.Fatalf("first message = %q, want %q", msg.Type, MsgAnalysisStarted)
	}

	msg := readMessage(t, conn)
	if msg.Type != MsgAnalysisResult {
		t.Fatalf("second message = %q, want %q (%s)", msg.Type, MsgAnalysisResult, msg.Payload)
	}
	var got model.Analysis
	if err := json.Unmarshal(msg.Payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.Product != "Notion" || got.Provider != "mock" {
		t.Errorf("unexpected envelope: %+v", got)
	}
	if len(got.Result.Rows) != 3 || len(got.Result.Ideas) != 3 {
		t.Errorf("rows = %d ideas = %d, want 3 and 3", len(got.Result.Rows), len(got.Result.Ideas))
	}
}

func TestAnalyzeWSErrors(t *testing.T) {
	tests := []struct {
		name        string
		frame       string
		wantStarted bool
		wantMessage string
	}{
		{"malformed json", `{"product":`, false, "invalid request body"},
		{"empty product", `{"product":"   "}`, true, "Product name is required"},
		{"name too long", `{"product":"` + strings.Repeat("x", 51) + `"}`, true, "Product name must be 50 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dial(t)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.frame)); err != nil {
				t.Fatal(err)
			}

			msg := readMessage(t, conn)
			if tt.wantStarted {
				if msg.Type != MsgAnalysisStarted {
					t.Fatalf("first message = %q, want %q", msg.Type, MsgAnalysisStarted)
				}
				msg = readMessage(t, conn)
			}
			if msg.Type != MsgError {
				t.Fatalf("message = %q, want %q", msg.Type, MsgError)
			}

			var resp model.ErrorResponse
			if err := json.Unmarshal(msg.Payload, &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error != tt.wantMessage || resp.Code != service.ReasonInvalidInput {
				t.Errorf("error = %+v, want %q/%s", resp, tt.wantMessage, service.ReasonInvalidInput)
			}
		})
	}
}

func TestAnalyzeWSRefusesWhileBusy(t *testing.T) {
	client := &blockingClient{release: make(chan struct{})}
	conn := dialWith(t, client)

	if err := conn.WriteJSON(model.AnalyzeRequest{Product: "First"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != MsgAnalysisStarted {
		t.Fatalf("first message = %q, want %q", msg.Type, MsgAnalysisStarted)
	}

	// The worker is now blocked inside Generate
	if err := conn.WriteJSON(model.AnalyzeRequest{Product: "Second"}); err != nil {
		t.Fatal(err)
	}
	msg := readMessage(t, conn)
	if msg.Type != MsgError {
		t.Fatalf("second request got %q, want %q", msg.Type, MsgError)
	}
	var resp model.ErrorResponse
	if err := json.Unmarshal(msg.Payload, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != service.ReasonRateLimited {
		t.Errorf("code = %q, want %q", resp.Code, service.ReasonRateLimited)
	}

	close(client.release)
	msg = readMessage(t, conn)
	if msg.Type != MsgAnalysisResult {
		t.Fatalf("message = %q, want %q", msg.Type, MsgAnalysisResult)
	}
	var got model.Analysis
	if err := json.Unmarshal(msg.Payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.Product != "First" {
		t.Errorf("Product = %q, want First", got.Product)
	}

	// Once the first analysis is done the connection accepts new work
	if err := conn.WriteJSON(model.AnalyzeRequest{Product: "Third"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != MsgAnalysisStarted {
		t.Fatalf("third request got %q, want %q", msg.Type, MsgAnalysisStarted)
	}
	if msg := readMessage(t, conn); msg.Type != MsgAnalysisResult {
		t.Fatalf("third request result = %q, want %q", msg.Type, MsgAnalysisResult)
	}
}
