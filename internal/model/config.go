package model

// Config — запись конфигурации инстанса (коллекция "configs").
// При импорте эта коллекция всегда заменяется целиком, а не сливается.
type Config struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}

// TableName фиксирует имя коллекции.
func (Config) TableName() string { return "configs" }

// ConfigsCollection — имя коллекции конфигурации; для неё импорт идёт в режиме
// replace-all.
const ConfigsCollection = "configs"

// AllCollections возвращает коллекции, участвующие в экспорте/импорте,
// в стабильном порядке.
func AllCollections() []string {
	return []string{"users", "pages", "revisions", "attachments", ConfigsCollection}
}
