package yatranslate

import (
	"context"
	"encoding/json"
	"fmt"
)

// Langs is the result of the getLangs endpoint.
type Langs struct {
	Dirs  []string          `json:"dirs"`            // Supported translation directions, e.g. "en-ru"
	Langs map[string]string `json:"langs,omitempty"` // Language code to display name, when a locale was requested
	JSONP []byte            `json:"-"`               // Raw body when Params.Callback was set
}

// UnmarshalJSON accepts either a bare list of directions or an object with
// "dirs" and "langs" keys.
func (l *Langs) UnmarshalJSON(data []byte) error {
	var dirs []string
	if err := json.Unmarshal(data, &dirs); err == nil {
		l.Dirs = dirs
		return nil
	}

	type alias Langs
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Langs(a)
	return nil
}

// HasDirection reports whether translation from one language to another is supported.
func (l *Langs) HasDirection(from, to string) bool {
	dir := from + "-" + to
	for _, d := range l.Dirs {
		if d == dir {
			return true
		}
	}
	return false
}

// langsFromXML reads the directions from the "dirs" element, or from every
// top-level element when there is none.
func langsFromXML(root *Node) *Langs {
	langs := &Langs{}
	if dirs := root.Find("dirs"); dirs != nil && len(dirs.Nodes) > 0 {
		langs.Dirs = dirs.ChildTexts()
	} else {
		langs.Dirs = root.ChildTexts()
	}

	if items := root.Find("langs"); items != nil && len(items.Nodes) > 0 {
		langs.Langs = make(map[string]string, len(items.Nodes))
		for i := range items.Nodes {
			item := &items.Nodes[i]
			langs.Langs[item.Attr("key")] = item.Attr("value")
		}
	}
	return langs
}

// langsSlot holds the last fetched language list. The zero value is empty.
type langsSlot struct {
	langs  *Langs
	filled bool
}

func (s *langsSlot) get() (*Langs, bool) {
	return s.langs, s.filled
}

func (s *langsSlot) set(langs *Langs) {
	s.langs = langs
	s.filled = true
}

// GetLangs retrieves the supported translation directions.
// The result is cached; update forces a new request.
func (c *Client) GetLangs(update bool, p Params) (*Langs, error) {
	return c.GetLangsWithContext(context.Background(), update, p)
}

// GetLangsWithContext retrieves the supported translation directions,
// respecting the provided context for cancellation and timeouts.
//
// With a callback set the cache is bypassed and the raw body is returned in
// Langs.JSONP. In XML mode the callback itself is not sent.
func (c *Client) GetLangsWithContext(ctx context.Context, update bool, p Params) (*Langs, error) {
	if p.Callback != "" {
		observeLangsCache("bypass")
		u, err := c.makeURL(endpointLangs, "")
		if err != nil {
			return nil, err
		}
		raw, err := c.makeRequest(ctx, u, false, c.formParams(p, nil), p.Proxy)
		if err != nil {
			return nil, err
		}
		return &Langs{JSONP: raw}, nil
	}

	if cached, ok := c.langs.get(); ok && !update {
		observeLangsCache("hit")
		return cached, nil
	}
	observeLangsCache("miss")

	res, err := c.makeCombinedRequest(ctx, endpointLangs, false, p, nil)
	if err != nil {
		return nil, err
	}

	var langs *Langs
	switch {
	case res.xml != nil:
		langs = langsFromXML(res.xml)
	case res.json != nil:
		langs = &Langs{}
		if err := json.Unmarshal(res.json, langs); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	default:
		return &Langs{JSONP: res.raw}, nil
	}

	c.langs.set(langs)
	return langs, nil
}

// OK reports whether the API key is currently usable by forcing a refresh of
// the language list. Failures are logged as warnings.
func (c *Client) OK(p Params) bool {
	return c.OKWithContext(context.Background(), p)
}

// OKWithContext is OK with a caller-provided context.
func (c *Client) OKWithContext(ctx context.Context, p Params) bool {
	if _, err := c.GetLangsWithContext(ctx, true, p); err != nil {
		c.logger.WithError(err).Warn("API key check failed")
		return false
	}
	return true
}
