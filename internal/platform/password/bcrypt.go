// Package password は認証情報のハッシュ化を提供します。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash はアカウントが存在しない場合の比較に使うハッシュです。
// 存在しないキーと誤ったパスワードで処理時間が変わらないようにします。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BcryptHasher はbcryptによる一方向ハッシュを生成・検証します。
// ソルトはレコードごとにbcryptが生成し、ハッシュ文字列に含まれます。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher は指定コストのBcryptHasherを生成します。
// 範囲外のコストはbcrypt.DefaultCostに置き換えます。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文パスワードからハッシュを導出します。
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Verify はハッシュと平文パスワードが一致するか検証します。
func (h *BcryptHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyHash は存在しないアカウントの比較に使うハッシュを返します。
func (h *BcryptHasher) DummyHash() string {
	return dummyHash
}
