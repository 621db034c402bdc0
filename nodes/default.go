package nodes

import (
	"github.com/mailkit/mailkit/graph"
	"github.com/mailkit/mailkit/mail"
)

// DefaultSteps returns the node names of the standard drafting pipeline
// in execution order.
func DefaultSteps() []string {
	return []string{
		StepFormatSubject,
		StepAddGreeting,
		StepAddSignature,
		StepValidateEmail,
		StepCountWords,
	}
}

// Register adds every built-in step to reg under its canonical name.
func Register(reg *graph.Registry[mail.Draft, mail.Update]) {
	reg.Register(StepFormatSubject, FormatSubject)
	reg.Register(StepAddGreeting, AddGreeting)
	reg.Register(StepAddSignature, AddSignature)
	reg.Register(StepValidateEmail, ValidateEmail)
	reg.Register(StepCountWords, CountWords)
	reg.Register(StepUppercaseSubject, UppercaseSubject)
}

// Default compiles the standard drafting pipeline:
//
//	format_subject -> add_greeting -> add_signature -> validate_email -> word_count
func Default() (*graph.Pipeline[mail.Draft, mail.Update], error) {
	return graph.New(mail.Apply).
		AddNode(StepFormatSubject, FormatSubject).
		AddNode(StepAddGreeting, AddGreeting).
		AddNode(StepAddSignature, AddSignature).
		AddNode(StepValidateEmail, ValidateEmail).
		AddNode(StepCountWords, CountWords).
		AddEdge(graph.Start, StepFormatSubject).
		AddEdge(StepFormatSubject, StepAddGreeting).
		AddEdge(StepAddGreeting, StepAddSignature).
		AddEdge(StepAddSignature, StepValidateEmail).
		AddEdge(StepValidateEmail, StepCountWords).
		AddEdge(StepCountWords, graph.End).
		Compile()
}
