package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the Azure Speech short-audio REST endpoint.
type Client struct {
	key      string
	language string
	baseURL  string
	client   *http.Client
}

// NewClient builds a transcription client for the given region.
// language follows BCP-47, e.g. "ko-KR".
func NewClient(key, region, language string) *Client {
	return &Client{
		key:      key,
		language: language,
		baseURL:  fmt.Sprintf("https://%s.stt.speech.microsoft.com", region),
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.baseURL = url
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Transcribe validates audio and sends it to the recognizer. A
// recording in which no speech was recognized yields an empty
// transcript, not an error.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	info, err := ValidateWAV(audio)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/speech/recognition/conversation/cognitiveservices/v1?language=%s", c.baseURL, c.language)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", info.SampleRate))
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech error %d: %s", resp.StatusCode, string(body))
	}

	var rec recognitionResponse
	if err := json.Unmarshal(body, &rec); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	switch rec.RecognitionStatus {
	case "Success":
		return rec.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout":
		return "", nil
	default:
		return "", fmt.Errorf("recognition failed: %s", rec.RecognitionStatus)
	}
}
