package analyzer

import "fmt"

// Message builders for the fixed diagnostic catalogue — every string
// an Analyzer ever reports into the sink is produced by one of these,
// so the wording lives in one place.

func msgAlreadyDeclared(name string) string {
	return fmt.Sprintf("identificador %s ja declarado anteriormente", name)
}

func msgIdentNotDeclared(name string) string {
	return fmt.Sprintf("identificador %s nao declarado", name)
}

func msgTypeNotDeclared(name string) string {
	return fmt.Sprintf("tipo %s nao declarado", name)
}

func msgAssignIncompatible(lhsText string) string {
	return fmt.Sprintf("atribuicao nao compativel para %s", lhsText)
}

func msgCallArity(name string) string {
	return fmt.Sprintf("incompatibilidade de parametros na chamada de %s", name)
}

const msgReturnNotAllowed = "comando retorne nao permitido nesse escopo"
