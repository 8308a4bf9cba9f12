package models

import (
	"attendance/db"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	db.InitTest()
	Init()
	os.Exit(m.Run())
}
