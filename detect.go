package yatranslate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// DetectOptions holds the parameters of a detect call.
type DetectOptions struct {
	Text string   // Text whose language is detected
	Hint []string // Likely languages, most likely first (optional)
	Params
}

// Detection is the result of a detect call.
type Detection struct {
	Lang  string       // Language code as returned by the API; empty when undetermined
	Tag   language.Tag // Lang parsed as a BCP 47 tag, language.Und when undetermined
	JSONP []byte       // Raw response when Params.Callback was set
}

// detectResponse is the JSON body of the detect endpoint.
type detectResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

// Detect detects the language of text using background context.
func (c *Client) Detect(text string) (*Detection, error) {
	return c.DetectWithContext(context.Background(), text)
}

// DetectWithContext detects the language of text with the provided context for timeout or cancellation.
func (c *Client) DetectWithContext(ctx context.Context, text string) (*Detection, error) {
	return c.DetectWithOptions(ctx, DetectOptions{Text: text})
}

// DetectWithOptions performs the detect request with complete options.
func (c *Client) DetectWithOptions(ctx context.Context, o DetectOptions) (*Detection, error) {
	if o.Text == "" {
		return nil, errors.New("no text to detect")
	}

	extra := url.Values{"text": {o.Text}}
	if len(o.Hint) > 0 {
		extra.Set("hint", strings.Join(o.Hint, ","))
	}

	res, err := c.makeCombinedRequest(ctx, endpointDetect, true, o.Params, extra)
	if err != nil {
		return nil, err
	}

	switch {
	case res.xml != nil:
		if err := checkCode(res.xml.Attr("code"), res.xml.Attr("message")); err != nil {
			return nil, err
		}
		return newDetection(res.xml.Attr("lang")), nil
	case res.json != nil:
		var response detectResponse
		if err := json.Unmarshal(res.json, &response); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if err := checkCode(strconv.Itoa(response.Code), response.Message); err != nil {
			return nil, err
		}
		return newDetection(response.Lang), nil
	default:
		return &Detection{JSONP: res.raw}, nil
	}
}

func newDetection(lang string) *Detection {
	d := &Detection{Lang: lang, Tag: language.Und}
	if lang == "" {
		return d
	}
	if tag, err := language.Parse(lang); err == nil {
		d.Tag = tag
	}
	return d
}
