package cache

import (
	"fmt"
	"net/url"

	"tuishare_backend/internal/feature/account/domain/entity"
)

// cacheKey は名前空間・種別・識別キーからRedisキーを生成します。
// 識別キーはパーセントエンコードするため、異なるキーが同じRedisキーになることはありません。
func cacheKey(namespace string, kind entity.Kind, key string) string {
	return fmt.Sprintf("%s:%s:%s", namespace, kind, url.PathEscape(key))
}
