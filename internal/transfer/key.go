package transfer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// KeyHeaderName — HTTP-заголовок, в котором передаётся строка трансфер-ключа.
const KeyHeaderName = "X-Wikigo-Transfer-Key"

// keySeparator отделяет origin целевого инстанса от пары id:secret.
const keySeparator = "__wikigo_transfer_key__"

// Key — распарсенный трансфер-ключ: адрес выдавшего инстанса и пара id/secret.
// Строковая форма одновременно является bearer-кредом и адресом маршрутизации.
type Key struct {
	TargetURL *url.URL
	ID        string
	Secret    string
}

// Origin возвращает scheme://host целевого инстанса.
func (k Key) Origin() string {
	return k.TargetURL.Scheme + "://" + k.TargetURL.Host
}

// String восстанавливает строковую форму ключа.
func (k Key) String() string {
	return k.Origin() + keySeparator + k.ID + ":" + k.Secret
}

// GenerateKeyString создаёт новую пару id/secret (uuid) и собирает строку ключа
// вида <origin><sep><id>:<secret> для указанного адреса инстанса.
func GenerateKeyString(siteURL *url.URL) (Key, string, error) {
	if siteURL == nil || !siteURL.IsAbs() || siteURL.Host == "" {
		return Key{}, "", New(KindKeyGeneration, "site url must be an absolute URL")
	}
	k := Key{
		TargetURL: siteURL,
		ID:        uuid.NewString(),
		Secret:    uuid.NewString(),
	}
	s := fmt.Sprintf("%s://%s%s%s:%s", siteURL.Scheme, siteURL.Host, keySeparator, k.ID, k.Secret)
	return k, s, nil
}

// ParseKey — чистый декодер строки ключа. БД не трогает.
func ParseKey(s string) (Key, error) {
	origin, rest, found := strings.Cut(s, keySeparator)
	if !found {
		return Key{}, New(KindInvalidKeyFormat, "transfer key has unexpected shape")
	}
	id, secret, ok := strings.Cut(rest, ":")
	if !ok || id == "" || secret == "" {
		return Key{}, New(KindInvalidKeyFormat, "transfer key has no id:secret pair")
	}
	u, err := url.Parse(origin)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Key{}, New(KindInvalidKeyFormat, "transfer key target address is not an absolute URL")
	}
	return Key{TargetURL: u, ID: id, Secret: secret}, nil
}
