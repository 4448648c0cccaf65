package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards with the same return can be merged:
	//   if a { return err }
	//   if b { return err }
	// => if a || b { return err }
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// logging keeps diagnostics on slog so the colored handler formats them.
func logging(m dsl.Matcher) {
	m.Import("log")

	m.Match(`log.Printf($*_)`, `log.Println($*_)`, `log.Print($*_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`use log/slog instead of the log package`)

	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`).
		Where(!m.File().PkgPath.Matches(`/cmd/`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`write diagnostics with slog; only cmd/ prints to stdout`)
}

// errs keeps error construction idiomatic.
func errs(m dsl.Matcher) {
	m.Match(`errors.New(fmt.Sprintf($*args))`).
		Report(`use fmt.Errorf`).
		Suggest(`fmt.Errorf($args)`)

	m.Match(`fmt.Errorf($f, $*_, $err.Error())`).
		Report(`wrap $err with %w instead of formatting its message`)

	m.Match(`context.TODO()`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`thread the caller's context instead of context.TODO()`)
}
