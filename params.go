package yatranslate

import (
	"net/url"

	"golang.org/x/text/language"
)

// Reserved query parameter names.
const (
	paramKey      = "key"
	paramUI       = "ui"
	paramCallback = "callback"
)

// Params holds the optional parameters accepted by every API call.
type Params struct {
	// Locale is the language of the names returned by getLangs, sent as "ui".
	// language.Und leaves it unset.
	Locale language.Tag
	// Proxy routes this call through the given proxy.
	Proxy *url.URL
	// Callback asks for a JSONP response wrapped in the named function.
	// The response is returned raw and never cached. Dropped in XML mode.
	Callback string
}

// formParams builds the request values: extra endpoint values first, then the
// optional parameters, then the API key.
func (c *Client) formParams(p Params, extra url.Values) url.Values {
	values := make(url.Values, len(extra)+3)
	for name, vals := range extra {
		values[name] = append([]string(nil), vals...)
	}
	if p.Locale != language.Und {
		base, _ := p.Locale.Base()
		values.Set(paramUI, base.String())
	}
	if p.Callback != "" {
		values.Set(paramCallback, p.Callback)
	}
	values.Set(paramKey, c.apiKey)

	// JSONP only makes sense for JSON responses.
	if c.format == FormatXML {
		values.Del(paramCallback)
	}
	return values
}
