package psqlbuilder

import "github.com/Masterminds/squirrel"

// Builder squirrel-билдер с плейсхолдерами под конкретный драйвер
type Builder struct {
	sb squirrel.StatementBuilderType
}

// postgres использует $1, $2, ...
var postgres = Builder{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}

// ForDriver возвращает билдер для драйвера database/sql ("postgres" или "sqlite")
func ForDriver(driver string) Builder {
	if driver == "sqlite" {
		return Builder{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}
	}
	return postgres
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// Select создает SELECT с плейсхолдерами Postgres
func Select(columns ...string) squirrel.SelectBuilder {
	return postgres.Select(columns...)
}

// Insert создает INSERT с плейсхолдерами Postgres
func Insert(table string) squirrel.InsertBuilder {
	return postgres.Insert(table)
}

// Update создает UPDATE с плейсхолдерами Postgres
func Update(table string) squirrel.UpdateBuilder {
	return postgres.Update(table)
}

// Delete создает DELETE с плейсхолдерами Postgres
func Delete(table string) squirrel.DeleteBuilder {
	return postgres.Delete(table)
}
