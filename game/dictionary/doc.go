// Package dictionary manages the named word lists a solver searches.
//
// Word lists are normalized on the way in: entries are trimmed and
// lowercased, anything containing a non-letter is dropped, duplicates are
// removed and the result is sorted. A Manager caches dictionaries in memory
// over a Persistence backend:
//
//   - MemoryPersistence keeps everything in process (tests, throwaway servers)
//   - FilePersistence stores one word per line in <dir>/<name>.txt, with the
//     previous version kept in <dir>/backups/<name>.txt
//   - SQLitePersistence stores words in a SQLite database
//
// Every merge backs up the stored list first, so the last merge can be undone
// with Restore. The name "default" always resolves: when nothing is stored
// under it, the Manager serves the word list embedded in the binary.
//
// Example usage:
//
//	persistence, err := dictionary.NewFilePersistence("dictionaries")
//	if err != nil {
//	    return err
//	}
//	manager := dictionary.NewManagerWithPersistence(persistence)
//
//	dict, err := manager.Get("default")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(dict.Len(), "words")
//
//	// Add words, keeping a backup of the previous list
//	if _, _, err := manager.Merge("default", []string{"Zebra", "qi", "don't"}); err != nil {
//	    return err
//	}
//
// Use the ReadWords and Analyze helpers to inspect raw word list files.
package dictionary
