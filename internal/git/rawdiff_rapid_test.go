package git

import (
	"testing"

	"pgregory.net/rapid"
)

// --- Generators ---

var genPath = rapid.StringMatching(`[a-z][a-z0-9_.-]{0,20}(/[a-z0-9_.-]{1,10}){0,3}`)

func genEntry() *rapid.Generator[FileEntry] {
	return rapid.Custom(func(t *rapid.T) FileEntry {
		kind := rapid.SampledFrom([]ChangeKind{
			ChangeKindAdded,
			ChangeKindModified,
			ChangeKindDeleted,
			ChangeKindRenamed,
			ChangeKindCopied,
		}).Draw(t, "kind")

		entry := FileEntry{
			Path: genPath.Draw(t, "path"),
			Kind: kind,
		}
		if kind.HasTwoPaths() {
			entry.OldPath = genPath.Draw(t, "oldPath")
		}
		return entry
	})
}

// encodeRawEntry renders a FileEntry the way `git diff --raw -z` would.
func encodeRawEntry(e FileEntry) []byte {
	var meta string
	switch e.Kind {
	case ChangeKindAdded:
		meta = ":000000 100644 0000000 1111111 A"
	case ChangeKindDeleted:
		meta = ":100644 000000 1111111 0000000 D"
	case ChangeKindRenamed:
		meta = ":100644 100644 1111111 2222222 R100"
	case ChangeKindCopied:
		meta = ":100644 100644 1111111 2222222 C100"
	default:
		meta = ":100644 100644 1111111 2222222 M"
	}

	out := append([]byte(meta), 0)
	if e.Kind.HasTwoPaths() {
		out = append(out, []byte(e.OldPath)...)
		out = append(out, 0)
	}
	out = append(out, []byte(e.Path)...)
	out = append(out, 0)
	return out
}

// Property: parseRawDiff recovers exactly the entries that were encoded,
// in order.
func TestParseRawDiff_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entries := rapid.SliceOfN(genEntry(), 0, 20).Draw(t, "entries")

		data := []byte{}
		for _, e := range entries {
			data = append(data, encodeRawEntry(e)...)
		}

		parsed, err := parseRawDiff(data)
		if err != nil {
			t.Fatalf("parseRawDiff: %v", err)
		}
		if len(parsed) != len(entries) {
			t.Fatalf("parsed %d entries, encoded %d", len(parsed), len(entries))
		}
		for i := range entries {
			if parsed[i] != entries[i] {
				t.Fatalf("entry %d: parsed %#v, encoded %#v", i, parsed[i], entries[i])
			}
		}
	})
}
