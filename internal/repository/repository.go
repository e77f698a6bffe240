// Package repository handles all interactions with the database.
//
// It contains the raw SQL statements and the methods that run them through
// the Query Executor, abstracting SQL away from the service layer.
package repository
