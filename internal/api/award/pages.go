package award

import "fmt"

// Codes is the full set of award codes the responder has a page for.
var Codes = []int{200, 201, 403, 404, 405, 413, 414, 418, 422, 429, 431, 451, 500, 501}

// One page per award code. Keys must stay in sync with Codes.
var pages = map[int]page{
	200: {"200 OK", "Nothing went wrong. Savour it."},
	201: {"201 Created", "Your comment is now part of the board's permanent record."},
	403: {"403 Forbidden", "That comment belongs to somebody else. Hands off."},
	404: {"404 Not Found", "There is nothing here. There never was."},
	405: {"405 Method Not Allowed", "Deleting comments with DELETE? Too sensible. Use POST."},
	413: {"413 Payload Too Large", "That body weighs more than 1024 bytes. The server refuses to lift it."},
	414: {"414 URI Too Long", "URLs longer than 42 characters are against house rules."},
	418: {"418 I'm a Teapot", "This server only serves Earl Grey. Hot."},
	422: {"422 Unprocessable Entity", "Comments must keep to Latin-1. Your characters were too wide."},
	429: {"429 Too Many Requests", "Five visits per five seconds. You have been counted."},
	431: {"431 Request Header Fields Too Large", "Your headers arrived wearing far too many hats."},
	451: {"451 Unavailable For Legal Reasons", "We can neither confirm nor deny the existence of this page."},
	500: {"500 Internal Server Error", "Something broke on our side. An award is the least we can do."},
	501: {"501 Not Implemented", "PUT is not, and will not be, a thing here."},
}

type page struct {
	title string
	text  string
}

// Body returns the HTML artifact for code. ok is false for codes outside the
// catalogue; those respond with an empty body and the bare status.
func Body(code int) (string, bool) {
	p, found := pages[code]
	if !found {
		return "", false
	}
	return render(p.title, fmt.Sprintf("<h1>%s</h1><p>%s</p><p><a href=\"/home\">Back home</a></p>", p.title, p.text)), true
}

// IndexPage is the landing page shown to logged-out visitors.
func IndexPage() string {
	return render("award board", `<h1>award board</h1>
<p>Sign up, log in, leave a comment, and collect HTTP status codes like trophies.</p>
<p>POST /signup and /login with {"username": ..., "password": ...} to begin.</p>`)
}

// HomePage is the member page behind the rate limiter.
func HomePage() string {
	return render("home", `<h1>home</h1>
<p>Welcome back. The comment board lives at /comments; your trophy cabinet is at /me.</p>
<p>Refresh this page too eagerly and the 429 award is yours.</p>`)
}

func render(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`, title, body)
}
