// Package messages displays the first validation message of one or more form
// controls.
//
// A ValidationMessages component is declared for a set of controls. Each
// control shows at most one error at a time, the first reported by its
// validators. Validators built with the validation package carry their
// message; other failures are displayed by ValidationMessage children keyed
// by error name, or by a message catalogue.
//
//	group := forms.NewGroup(
//		forms.Named("email", forms.NewControl("", validation.Required("E-mail is required"))),
//		forms.Named("name", forms.NewControl("", forms.Required)),
//	)
//	form := messages.NewForm(group)
//
//	name := messages.New(messages.WithForm(form),
//		messages.WithMessage(messages.NewMessage("required", messages.WithTemplate("Tell us your name"))))
//	if err := name.SetFor(messages.ForName("name")); err != nil { ... }
//	if err := name.Init(); err != nil { ... }
//
//	form.Submit()
//	msgs, err := name.Messages()
package messages
