// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"net/url"
	"regexp"
	"time"
)

// TagDecoder transforms the inner item of a tagged value into a richer
// host value. It returns either a replacement Item (to hand back to the
// caller in place of the raw tagged item) or an error.
type TagDecoder func(inner Item) (Item, error)

// tagEntry is one registration in the tag-decode registry.
type tagEntry struct {
	decoder TagDecoder
}

// TagRegistry maps a numeric CBOR tag to a [TagDecoder]. Unlike the
// Generator's type-pack registry (an ordered list, since Go types are
// matched structurally), tags are already a unique numeric key, so a
// map is the natural — and still linear-dispatch-equivalent —
// implementation of "consulted linearly on dispatch" (spec.md §3): tag
// lookup is O(1) but behaves identically to a linear scan over unique
// keys.
type TagRegistry struct {
	entries map[uint64]tagEntry
}

// newDefaultTagRegistry returns a registry pre-populated with the
// default decoders from spec.md §6: tag 11 → Date, tag 15 → URI, tag 23
// → RegExp.
func newDefaultTagRegistry() *TagRegistry {
	r := &TagRegistry{entries: make(map[uint64]tagEntry)}
	r.entries[11] = tagEntry{decoder: decodeDateTag}
	r.entries[15] = tagEntry{decoder: decodeURITag}
	r.entries[23] = tagEntry{decoder: decodeRegexpTag}
	return r
}

// AddSemanticTag registers decoder for tag, replacing any existing
// registration. It returns the previous decoder and true if one was
// displaced.
func (r *TagRegistry) AddSemanticTag(tag uint64, decoder TagDecoder) (TagDecoder, bool) {
	prev, ok := r.entries[tag]
	r.entries[tag] = tagEntry{decoder: decoder}
	if ok {
		return prev.decoder, true
	}
	return nil, false
}

// lookup returns the decoder registered for tag, if any.
func (r *TagRegistry) lookup(tag uint64) (TagDecoder, bool) {
	entry, ok := r.entries[tag]
	if !ok {
		return nil, false
	}
	return entry.decoder, true
}

// decodeDateTag implements the default tag-11 decoder: if inner is
// Text, parse as RFC 3339; if Number (Unsigned, Negative, or Float),
// treat as UNIX seconds and widen to milliseconds. Any other inner kind
// fails.
func decodeDateTag(inner Item) (Item, error) {
	switch inner.Kind {
	case KindText:
		t, err := time.Parse(time.RFC3339, inner.Text)
		if err != nil {
			return Item{}, wrapError(Type, err, "parse date text %q", inner.Text)
		}
		return dateItem(t), nil
	case KindUnsigned:
		return dateItem(time.UnixMilli(int64(inner.Uint) * 1000)), nil
	case KindNegative:
		return dateItem(time.UnixMilli(inner.Int * 1000)), nil
	case KindFloat:
		return dateItem(time.UnixMilli(int64(inner.Float * 1000))), nil
	default:
		return Item{}, errUnsupportedDate(inner.Kind)
	}
}

// dateItem wraps a decoded time.Time back into an Item tree so that
// callers working purely in terms of Item (the CLI tools) still get a
// usable representation: an Unsigned item carrying UNIX milliseconds,
// tagged again with 11 so round-tripping through Pack preserves the
// tag. Host code that wants a time.Time directly should register its
// own tag-11 decoder via AddSemanticTag.
func dateItem(t time.Time) Item {
	return TaggedItem(11, Unsigned(uint64(t.UnixMilli())))
}

// decodeURITag implements the default tag-15 decoder: requires Text,
// parses with query-string decoding, and represents the result as a Map
// of its components so it remains expressible as an Item.
func decodeURITag(inner Item) (Item, error) {
	if inner.Kind != KindText {
		return Item{}, errUnsupportedURI(inner.Kind)
	}
	u, err := url.Parse(inner.Text)
	if err != nil {
		return Item{}, wrapError(Type, err, "parse URI %q", inner.Text)
	}
	query := u.Query()
	queryPairs := make([]Pair, 0, len(query))
	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		queryPairs = append(queryPairs, Pair{Key: TextItem(key), Value: TextItem(values[0])})
	}
	return TaggedItem(15, MapItem([]Pair{
		{Key: TextItem("scheme"), Value: TextItem(u.Scheme)},
		{Key: TextItem("host"), Value: TextItem(u.Host)},
		{Key: TextItem("path"), Value: TextItem(u.Path)},
		{Key: TextItem("query"), Value: MapItem(queryPairs)},
	})), nil
}

// decodeRegexpTag implements the default tag-23 decoder: requires Text,
// compiles it, and fails with the compile error wrapped if the pattern
// is invalid.
func decodeRegexpTag(inner Item) (Item, error) {
	if inner.Kind != KindText {
		return Item{}, errUnsupportedRegexp(inner.Kind)
	}
	if _, err := regexp.Compile(inner.Text); err != nil {
		return Item{}, wrapError(Type, err, "compile regexp %q", inner.Text)
	}
	return TaggedItem(23, TextItem(inner.Text)), nil
}
