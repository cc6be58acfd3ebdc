package main

import "github.com/ARK-Community/AutoBillTracker/cmd"

func main() {
	cmd.Execute()
}
