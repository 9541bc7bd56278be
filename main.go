package main

import "github.com/Crazytieguy/alignment-hive-sub001/cmd"

func main() {
	cmd.Execute()
}
