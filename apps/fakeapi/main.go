package main

import (
	"log"
	"os"

	logsvc "github.com/ucvirtual/horario/services/logger"
)

func main() {
	std := log.New(os.Stdout, "FAKEAPI : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewStdLogger(std)

	app := NewServer(&Options{
		Address:   ":8000",
		SecretKey: []byte("fakeapi-dev-secret"),
	}, openStore())

	logger.Info("fakeapi listening on :8000 (seeded users: admin@uni.edu, docente@uni.edu, estudiante@uni.edu)")
	if err := app.Start(); err != nil {
		logger.Fatal("server stopped", err)
	}
}
