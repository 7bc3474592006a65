package board

import "fmt"

func grabbedMessage(t Token) string    { return fmt.Sprintf("%s grabbed", t) }
func canceledMessage(t Token) string   { return fmt.Sprintf("%s selection canceled", t) }
func droppedMessage(t Token) string    { return fmt.Sprintf("%s dropped", t) }
func swappedMessage(a, b Token) string { return fmt.Sprintf("Swapped %s and %s", a, b) }
func placedMessage(t Token) string     { return fmt.Sprintf("Placed %s in the dropzone", t) }
func returnedMessage(t Token) string   { return fmt.Sprintf("%s moved back to the word bank", t) }
func notFoundMessage(t Token) string   { return fmt.Sprintf("Could not find %s in the word bank", t) }
