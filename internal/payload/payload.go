// Package payload renders a message configuration into the Slack incoming
// webhook JSON document.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"slack-notifier/internal/domain/model"
)

// ErrBuild is returned when the payload cannot be constructed or encoded.
var ErrBuild = errors.New("build slack payload")

// Payload is the top-level webhook body. Unset options are omitted, never sent as null.
type Payload struct {
	Text        *string      `json:"text,omitempty"`
	Channel     string       `json:"channel,omitempty"`
	Username    string       `json:"username,omitempty"`
	IconEmoji   string       `json:"icon_emoji,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment mirrors model.Attachment on the wire.
type Attachment struct {
	Fallback   string  `json:"fallback,omitempty"`
	Color      string  `json:"color,omitempty"`
	Pretext    string  `json:"pretext,omitempty"`
	AuthorName string  `json:"author_name,omitempty"`
	AuthorLink string  `json:"author_link,omitempty"`
	AuthorIcon string  `json:"author_icon,omitempty"`
	Title      string  `json:"title,omitempty"`
	TitleLink  string  `json:"title_link,omitempty"`
	Text       string  `json:"text,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
	ThumbURL   string  `json:"thumb_url,omitempty"`
	Fields     []Field `json:"fields,omitempty"`
}

// Field is emitted with "short" only when it is true.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short,omitempty"`
}

// Build renders cfg. A non-nil override replaces cfg.Text, even when it is empty.
// Registry entities are only read.
func Build(cfg *model.MessageConfig, override *string) (*Payload, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil message config", ErrBuild)
	}

	p := &Payload{
		Channel:  cfg.Channel,
		Username: cfg.Username,
	}

	switch {
	case override != nil:
		text := *override
		p.Text = &text
	case cfg.Text != "":
		text := cfg.Text
		p.Text = &text
	}

	if cfg.IconEmoji != "" {
		p.IconEmoji = cfg.IconEmoji
	} else {
		p.IconURL = cfg.IconURL
	}

	if len(cfg.Attachments) > 0 {
		p.Attachments = make([]Attachment, 0, len(cfg.Attachments))
		for i, a := range cfg.Attachments {
			if a == nil {
				return nil, fmt.Errorf("%w: attachment %d is nil", ErrBuild, i)
			}
			p.Attachments = append(p.Attachments, buildAttachment(a))
		}
	}

	if err := checkUTF8(p); err != nil {
		return nil, err
	}
	return p, nil
}

// checkUTF8 rejects strings that encoding/json would silently rewrite to U+FFFD.
func checkUTF8(p *Payload) error {
	check := func(key, v string) error {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: %s is not valid UTF-8", ErrBuild, key)
		}
		return nil
	}

	if p.Text != nil {
		if err := check("text", *p.Text); err != nil {
			return err
		}
	}
	for key, v := range map[string]string{
		"channel":    p.Channel,
		"username":   p.Username,
		"icon_emoji": p.IconEmoji,
		"icon_url":   p.IconURL,
	} {
		if err := check(key, v); err != nil {
			return err
		}
	}

	for i, a := range p.Attachments {
		for _, v := range []string{
			a.Fallback, a.Color, a.Pretext, a.AuthorName, a.AuthorLink, a.AuthorIcon,
			a.Title, a.TitleLink, a.Text, a.ImageURL, a.ThumbURL,
		} {
			if err := check(fmt.Sprintf("attachment %d", i), v); err != nil {
				return err
			}
		}
		for j, f := range a.Fields {
			key := fmt.Sprintf("attachment %d field %d", i, j)
			if err := check(key, f.Title); err != nil {
				return err
			}
			if err := check(key, f.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildAttachment(a *model.Attachment) Attachment {
	out := Attachment{
		Fallback:   a.Fallback,
		Color:      a.Color,
		Pretext:    a.Pretext,
		AuthorName: a.AuthorName,
		AuthorLink: a.AuthorLink,
		AuthorIcon: a.AuthorIcon,
		Title:      a.Title,
		TitleLink:  a.TitleLink,
		Text:       a.Text,
		ImageURL:   a.ImageURL,
		ThumbURL:   a.ThumbURL,
	}

	if len(a.Fields) > 0 {
		out.Fields = make([]Field, 0, len(a.Fields))
		for _, f := range a.Fields {
			out.Fields = append(out.Fields, Field{
				Title: f.Title,
				Value: f.Value,
				Short: f.Short,
			})
		}
	}

	return out
}

// Encode serializes p as compact JSON. HTML characters are left as-is so Slack
// link markup such as <https://x|y> reaches the API unchanged.
func Encode(p *Payload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrBuild)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
