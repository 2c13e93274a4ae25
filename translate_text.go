package yatranslate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TranslateOptions holds the parameters of a translate call.
type TranslateOptions struct {
	Text   []string // Texts to translate
	Lang   string   // Direction ("en-ru") or target language ("ru")
	Format string   // "plain" or "html"; empty leaves the server default
	Detect bool     // Ask the server to report the detected source language
	Params
}

// Translation is the result of a translate call.
type Translation struct {
	Lang     string   // Direction used, e.g. "en-ru"
	Detected string   // Detected source language, when requested
	Text     []string // Translated texts, in request order
	JSONP    []byte   // Raw response when Params.Callback was set
}

// translateResponse is the JSON body of the translate endpoint.
type translateResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Lang     string `json:"lang"`
	Detected struct {
		Lang string `json:"lang"`
	} `json:"detected"`
	Text []string `json:"text"`
}

// Translate translates a single text in the given direction using a background context.
func (c *Client) Translate(text, lang string) (*Translation, error) {
	return c.TranslateWithContext(context.Background(), text, lang)
}

// TranslateWithContext translates a single text with the provided context for timeout or cancellation.
func (c *Client) TranslateWithContext(ctx context.Context, text, lang string) (*Translation, error) {
	return c.TranslateWithOptions(ctx, TranslateOptions{
		Text: []string{text},
		Lang: lang,
	})
}

// TranslateWithOptions performs the translate request with complete options.
func (c *Client) TranslateWithOptions(ctx context.Context, o TranslateOptions) (*Translation, error) {
	if len(o.Text) == 0 {
		return nil, errors.New("no text to translate")
	}
	if o.Lang == "" {
		return nil, errors.New("translation direction is required")
	}

	extra := url.Values{
		"text": o.Text,
		"lang": {o.Lang},
	}
	if o.Format != "" {
		extra.Set("format", o.Format)
	}
	if o.Detect {
		extra.Set("options", "1")
	}

	res, err := c.makeCombinedRequest(ctx, endpointTranslate, true, o.Params, extra)
	if err != nil {
		return nil, err
	}

	switch {
	case res.xml != nil:
		if err := checkCode(res.xml.Attr("code"), res.xml.Attr("message")); err != nil {
			return nil, err
		}
		t := &Translation{Lang: res.xml.Attr("lang")}
		if detected := res.xml.Find("detected"); detected != nil {
			t.Detected = detected.Attr("lang")
		}
		for _, child := range res.xml.Nodes {
			if child.XMLName.Local == "text" {
				t.Text = append(t.Text, child.Text)
			}
		}
		return t, nil
	case res.json != nil:
		var response translateResponse
		if err := json.Unmarshal(res.json, &response); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if err := checkCode(strconv.Itoa(response.Code), response.Message); err != nil {
			return nil, err
		}
		return &Translation{
			Lang:     response.Lang,
			Detected: response.Detected.Lang,
			Text:     response.Text,
		}, nil
	default:
		return &Translation{JSONP: res.raw}, nil
	}
}

// checkCode turns an API-level code other than 200 into an *Error.
// An absent code is treated as success.
func checkCode(code, message string) error {
	if code == "" || code == "0" {
		return nil
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return fmt.Errorf("decode response: invalid code %q", code)
	}
	if n == http.StatusOK {
		return nil
	}
	apiErr := NewError(n)
	apiErr.Detail = message
	return apiErr
}
