package repository

import "go-sales-territory/internal/model"

// Models lists every persisted model in migration order
func Models() []interface{} {
	return []interface{}{
		&model.Privilege{},
		&model.Role{},
		&model.Representative{},
		&model.Client{},
		&model.Article{},
		&model.Pack{},
		&model.PackItem{},
		&model.Sale{},
	}
}
