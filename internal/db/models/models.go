package models

// All returns every model of the schema in migration order.
func All() []interface{} {
	return []interface{}{
		&Site{},
		&Role{},
		&Permission{},
		&RolePermission{},
		&User{},
		&Setting{},
		&Media{},
		&Post{},
	}
}
