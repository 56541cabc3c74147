// Package postgres implements the store interfaces using a PostgreSQL
// database accessed through database/sql with the pgx driver.
package postgres
