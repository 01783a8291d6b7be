// Package fuzztests houses Go fuzz harnesses for the analysis pipeline
// (text -> tokens -> structural model -> rule analyses). They guard against
// panics, hangs and invariant violations on arbitrary editor input.
//
// Назначение: прогонять произвольные байты через lexer/parser/syntax и
// проверять инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
