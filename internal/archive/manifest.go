package archive

import "time"

// MetaFileName — имя манифеста внутри архива.
const MetaFileName = "meta.json"

// Entry — одна коллекция внутри архива: имя и файл с её записями.
type Entry struct {
	Collection string `json:"collection"`
	FileName   string `json:"fileName"`
}

// Manifest — самоописание архива: версия схемы и перечень коллекций.
// Пишется экспортёром, проверяется получателем до импорта.
type Manifest struct {
	Version     string    `json:"version"`
	ExportedAt  time.Time `json:"exportedAt"`
	Collections []Entry   `json:"collections"`
}

// EntryFor возвращает запись манифеста для коллекции.
func (m Manifest) EntryFor(collection string) (Entry, bool) {
	for _, e := range m.Collections {
		if e.Collection == collection {
			return e, true
		}
	}
	return Entry{}, false
}
