package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// CloudinaryClient talks to the Cloudinary upload REST API with signed
// requests. It implements Client.
type CloudinaryClient struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	http      *http.Client
	now       func() time.Time
}

var _ Client = (*CloudinaryClient)(nil)

// NewCloudinary builds a client from credentials. Missing credentials are a
// configuration error surfaced at startup, not at first upload.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryClient, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials: %w", apperrors.ErrMissingSecret)
	}
	return &CloudinaryClient{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 60 * time.Second},
		now:       time.Now,
	}, nil
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *CloudinaryClient) WithBaseURL(base string) *CloudinaryClient {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Store uploads the reader's bytes into the folder and normalizes the
// provider response down to the {url, public_id} pair.
func (c *CloudinaryClient) Store(ctx context.Context, r io.Reader, filename, folder string) (model.ImageRef, error) {
	ts := strconv.FormatInt(c.now().Unix(), 10)

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"api_key":   c.apiKey,
		"timestamp": ts,
		"folder":    folder,
		"signature": c.sign(map[string]string{"folder": folder, "timestamp": ts}),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return model.ImageRef{}, fmt.Errorf("build upload form: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return model.ImageRef{}, fmt.Errorf("read upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.ImageRef{}, fmt.Errorf("build upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.ImageRef{}, fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || parsed.PublicID == "" {
		return model.ImageRef{}, fmt.Errorf("upload rejected (status %d): %s", resp.StatusCode, parsed.Error.Message)
	}

	ref := model.ImageRef{URL: parsed.SecureURL, PublicID: parsed.PublicID}
	if ref.URL == "" {
		ref.URL = parsed.URL
	}
	return ref, nil
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Delete destroys a blob by public ID. A "not found" result is success:
// delete is idempotent from the caller's point of view.
func (c *CloudinaryClient) Delete(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(c.now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", ts)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(map[string]string{"public_id": publicID, "timestamp": ts}))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("destroy image %s: %w", publicID, err)
	}
	defer resp.Body.Close()

	var parsed destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode destroy response: %w", err)
	}
	if parsed.Result != "ok" && parsed.Result != "not found" {
		return fmt.Errorf("destroy image %s: result %q", publicID, parsed.Result)
	}
	return nil
}

// sign produces the Cloudinary request signature: the parameters sorted by
// key, joined key=value with '&', with the API secret appended, SHA-1 hexed.
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	sb.WriteString(c.apiSecret)

	sum := sha1.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
