package main

import (
	server "lanchat/cmd/server"
)

func main() {
	server.Run()
}
