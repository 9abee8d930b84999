package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hrbot-connector/internal/config"
	"hrbot-connector/internal/domain/dto"
	"hrbot-connector/internal/infra/logger"
)

// PairRateLimitCode is the Graph API error code for the WhatsApp pairwise
// rate limit ("(#131056) pair rate limit hit").
const PairRateLimitCode = 131056

const (
	sendAttempts = 2
	retryBackoff = 350 * time.Millisecond
)

// APIError carries the Graph API error envelope of a failed send.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp api error: status %d code %d: %s", e.StatusCode, e.Code, e.Message)
}

// IsPairRateLimit reports whether err carries the pairwise rate-limit code.
func IsPairRateLimit(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == PairRateLimitCode
}

type MetaWhatsAppProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client
}

func NewMetaWhatsAppProvider(logger *logger.Logger, httpClient *http.Client) *MetaWhatsAppProvider {
	return &MetaWhatsAppProvider{Logger: logger, HttpClient: httpClient}
}

// SendTextMessage sends a text message to a recipient's phone number using
// the Meta WhatsApp Cloud API.
//
// Parameters:
//   - to: string - The recipient's wa_id in international format (digits only).
//   - message: string - The content of the text message to be sent.
//
// Returns:
//   - error: an *APIError when the Graph API rejected the send, or a plain
//     error on transport failure. Each send is attempted up to 2 times with a
//     fixed short backoff before the failure surfaces.
//
// Dependencies:
//   - Environment variables:
//   - GRAPH_API_URL: The base URL of the Graph API (versioned).
//   - PHONE_NUMBER_ID: The registered phone number id used to send messages.
//   - WHATSAPP_TOKEN: The bearer token that authorizes the request.
func (th *MetaWhatsAppProvider) SendTextMessage(to, message string) error {
	if to == "" || message == "" {
		return fmt.Errorf("recipient (to) and message cannot be empty")
	}

	payload := dto.TextMessagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             dto.TextContent{Body: message},
	}

	return th.postWithRetry(payload)
}

// SendTemplateMessage sends an approved template message, used to open a
// conversation with a party that has not messaged the bot in 24 hours.
func (th *MetaWhatsAppProvider) SendTemplateMessage(to, templateName string) error {
	if to == "" || templateName == "" {
		return fmt.Errorf("recipient (to) and template name cannot be empty")
	}

	payload := dto.TemplateMessagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: dto.Template{
			Name:     templateName,
			Language: dto.Language{Code: "en_US"},
		},
	}

	return th.postWithRetry(payload)
}

func (th *MetaWhatsAppProvider) postWithRetry(payload any) error {
	var lastErr error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		lastErr = th.post(payload)
		if lastErr == nil {
			return nil
		}
		if attempt < sendAttempts {
			time.Sleep(retryBackoff)
		}
	}
	return lastErr
}

func (th *MetaWhatsAppProvider) post(payload any) error {
	graphURL := config.GetEnv("GRAPH_API_URL")
	phoneNumberID := config.GetEnv("PHONE_NUMBER_ID")
	token := config.GetEnv("WHATSAPP_TOKEN")

	body, err := json.Marshal(payload)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to marshal payload %v", err))
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", graphURL, phoneNumberID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := th.HttpClient.Do(req)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("HTTP request failed %v", err))
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(res.Body)
		apiErr := &APIError{StatusCode: res.StatusCode}

		var envelope dto.ErrorResponse
		if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		} else {
			apiErr.Message = string(raw)
		}

		th.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(raw)))
		return apiErr
	}

	th.Logger.Debug(fmt.Sprintf("Message sent successfully %s", res.Status))
	return nil
}
