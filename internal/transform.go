package internal

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// imageFields are the flat keys whose string values name a CDN asset.
var imageFields = map[string]bool{
	"image":           true,
	"mainImage":       true,
	"coverImage":      true,
	"backgroundImage": true,
}

// imageListField is the array key whose object elements carry a "url" asset
// reference that must be rewritten element by element.
const imageListField = "images"

// ResolveAssetURL qualifies a bare asset filename against the CDN base.
// Values already carrying an absolute http/https scheme are returned
// unchanged, which makes resolution idempotent. Internal path segments in
// the filename are preserved.
//
// An empty filename resolves to cdnBase + "/". That mirrors the backend's
// observed behavior and is deliberately not special-cased; callers that care
// must filter empties first.
func ResolveAssetURL(value, cdnBase string) string {
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return cdnBase + "/" + value
}

// TransformAssetURLs walks a raw JSON document and rewrites every recognized
// image reference via ResolveAssetURL, at any nesting depth. The input bytes
// are never mutated; the rewritten document is returned as a new slice
// (sjson copies on write), so concurrent callers holding the original are
// safe. A document whose root is not an object or array (including null) is
// returned unchanged.
//
// Because already-absolute URLs pass through ResolveAssetURL untouched, the
// transform is idempotent: applying it twice equals applying it once.
func TransformAssetURLs(raw []byte, cdnBase string) []byte {
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() && !doc.IsArray() {
		return raw
	}
	return []byte(transformValue(string(raw), "", doc, cdnBase))
}

func transformValue(doc, path string, v gjson.Result, cdnBase string) string {
	if v.IsArray() {
		for i, elem := range v.Array() {
			doc = transformValue(doc, childPath(path, strconv.Itoa(i)), elem, cdnBase)
		}
		return doc
	}
	if !v.IsObject() {
		return doc
	}

	v.ForEach(func(key, val gjson.Result) bool {
		kp := childPath(path, escapeKey(key.Str))
		switch {
		case imageFields[key.Str] && val.Type == gjson.String:
			doc, _ = sjson.Set(doc, kp, ResolveAssetURL(val.Str, cdnBase))
		case key.Str == imageListField && val.IsArray():
			for i, elem := range val.Array() {
				ep := childPath(kp, strconv.Itoa(i))
				if u := elem.Get("url"); elem.IsObject() && u.Type == gjson.String {
					doc, _ = sjson.Set(doc, ep+".url", ResolveAssetURL(u.Str, cdnBase))
				}
				// Gallery elements may nest further image-bearing objects.
				doc = transformValue(doc, ep, elem, cdnBase)
			}
		case val.IsObject() || val.IsArray():
			doc = transformValue(doc, kp, val, cdnBase)
		}
		return true
	})
	return doc
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// escapeKey escapes gjson/sjson path metacharacters in an object key.
var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

func escapeKey(key string) string {
	return pathEscaper.Replace(key)
}
