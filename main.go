package main

import (
	"github.com/Rakhulsr/go-admin-dashboard/app/cmd"
	"github.com/Rakhulsr/go-admin-dashboard/app/configs"
)

func main() {
	env := configs.LoadEnv()
	log := configs.NewLogger(env)
	cmd.RunCli(env, log)
}
