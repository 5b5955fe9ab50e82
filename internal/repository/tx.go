package repository

import "database/sql"

// DBTX - общий интерфейс *sql.DB и *sql.Tx.
//
// Репозитории работают через этот интерфейс, поэтому один и тот же код
// выполняется как вне транзакции, так и внутри нее (через WithTx).
// Многотабличные мутации (размещение, расчет, сброс) сервисный слой
// оборачивает в одну транзакцию.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
