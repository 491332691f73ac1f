// internal/repository/repository.go
package repository

import "gorm.io/gorm/clause"

// forUpdate is the row lock taken on aggregate roots mutated in an
// update path.
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
