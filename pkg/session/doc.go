// Package session persists the mock judge server's per-id state to disk:
// the selected Ædificium and the running query count, one JSON file per
// registered id, rewritten after every mutation. The file format and the
// os.WriteFile(path, data, 0644) idiom mirror pkg/export's SaveJSONToFile.
package session
