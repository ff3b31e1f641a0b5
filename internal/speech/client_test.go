package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Errorf("missing subscription key header")
		}
		if got := r.URL.Query().Get("language"); got != "ko-KR" {
			t.Errorf("expected language ko-KR, got %s", got)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "audio/wav") {
			t.Errorf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"RecognitionStatus":"Success","DisplayText":"오늘 회의를 시작하겠습니다."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "koreacentral", "ko-KR")
	client.SetTestTransport(server.URL)

	text, err := client.Transcribe(context.Background(), buildWAV(1, 1, 16, 16000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "오늘 회의를 시작하겠습니다." {
		t.Errorf("unexpected transcript: %s", text)
	}
}

func TestTranscribeNoSpeech(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus":"NoMatch"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "koreacentral", "ko-KR")
	client.SetTestTransport(server.URL)

	text, err := client.Transcribe(context.Background(), buildWAV(1, 1, 16, 16000))
	if err != nil {
		t.Fatalf("silent audio should not be an error, got: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty transcript, got %q", text)
	}
}

func TestTranscribeRejectsInvalidAudio(t *testing.T) {
	client := NewClient("test-key", "koreacentral", "ko-KR")
	_, err := client.Transcribe(context.Background(), []byte("not audio at all"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestTranscribeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("quota exceeded"))
	}))
	defer server.Close()

	client := NewClient("test-key", "koreacentral", "ko-KR")
	client.SetTestTransport(server.URL)

	_, err := client.Transcribe(context.Background(), buildWAV(1, 1, 16, 16000))
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}
