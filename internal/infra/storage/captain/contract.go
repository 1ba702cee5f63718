package captain

import (
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обёрток с метриками
type DBExecutor = dbmetrics.DBExecutor
