package main

import (
	"fmt"
	"os"

	"task-board/cmd/task-board/commands"
)

// Здесь только запуск корневой команды: зависимости собираются
// в commands, когда понятно, какая подкоманда выполняется.
func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
