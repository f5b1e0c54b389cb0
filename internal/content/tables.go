// internal/content/tables.go
//
// The built-in phrase categories and trivia bank. Each category needs at
// least 24 phrases (one full grid minus the FREE center); the grid generator
// refuses shorter lists rather than repeating phrases.

package content

var categories = map[string]Category{
	"conference": {
		Key:   "conference",
		Title: "Conference Keynote",
		Phrases: []string{
			"At the end of the day",
			"Paradigm shift",
			"Synergy",
			"Circle back",
			"Low-hanging fruit",
			"Move the needle",
			"Thought leadership",
			"Best in class",
			"Game changer",
			"Disruptive innovation",
			"Double-click on that",
			"Take this offline",
			"Boil the ocean",
			"North star metric",
			"Value proposition",
			"Seamless integration",
			"Next slide please",
			"Can everyone see my screen",
			"We're out of time",
			"Great question",
			"Digital transformation",
			"Single source of truth",
			"Data-driven",
			"Secret sauce",
			"Hit the ground running",
			"Table stakes",
			"Peel the onion",
			"Net-net",
		},
	},
	"standup": {
		Key:   "standup",
		Title: "Daily Standup",
		Phrases: []string{
			"You're on mute",
			"No blockers",
			"Quick question",
			"Sorry I'm late",
			"Can you hear me",
			"Let's take it offline",
			"I'll follow up after",
			"Still working on it",
			"Waiting on code review",
			"It works on my machine",
			"The build is broken",
			"Flaky test",
			"Who's taking notes",
			"Let me share my screen",
			"Is the sprint board updated",
			"One more thing",
			"Short week",
			"I have a hard stop",
			"Carry it over",
			"Ping me on Slack",
			"That's out of scope",
			"We need a ticket for that",
			"Merge conflict",
			"Rollback",
			"Deploy freeze",
			"Retro item",
			"Done done or just done",
			"Parking lot",
		},
	},
	"webinar": {
		Key:   "webinar",
		Title: "Vendor Webinar",
		Phrases: []string{
			"Feel free to drop questions in the chat",
			"We'll share the recording",
			"A quick poll",
			"Our flagship product",
			"Enterprise-grade",
			"Battle-tested",
			"Blazing fast",
			"Scales effortlessly",
			"Built by developers for developers",
			"Zero configuration",
			"One-click deploy",
			"Fully managed",
			"No vendor lock-in",
			"Book a demo",
			"Free tier",
			"Limited time offer",
			"Trusted by thousands of teams",
			"Industry leading",
			"End-to-end",
			"Out of the box",
			"Roadmap item",
			"Coming soon",
			"Under the hood",
			"In real time",
			"AI-powered",
			"Future-proof",
			"ROI",
			"Let's jump right in",
		},
	},
}

var questionBank = []Question{
	{ID: "q-bingo-origin", Prompt: "In which country did the game that evolved into modern bingo originate?",
		Options: []string{"Italy", "France", "United States", "England"}, CorrectIndex: 0, Points: 200},
	{ID: "q-bingo-beano", Prompt: "Bingo was first marketed in the US under what name?",
		Options: []string{"Lotto", "Beano", "Housey", "Keno"}, CorrectIndex: 1, Points: 200},
	{ID: "q-free-space", Prompt: "What is the traditional value of the center square on a bingo card?",
		Options: []string{"Double points", "It is free", "It blocks the line", "Ten points"}, CorrectIndex: 1, Points: 150},
	{ID: "q-grid-cells", Prompt: "How many cells does a standard 5x5 bingo card have?",
		Options: []string{"20", "24", "25", "30"}, CorrectIndex: 2, Points: 150},
	{ID: "q-caller", Prompt: "The person who announces numbers in a bingo hall is called the…",
		Options: []string{"Dealer", "Caller", "Croupier", "Umpire"}, CorrectIndex: 1, Points: 150},
	{ID: "q-uk-housie", Prompt: "What is 90-ball bingo commonly called in the UK and Australia?",
		Options: []string{"Housie", "Tombola Royale", "Full Card", "Niner"}, CorrectIndex: 0, Points: 200},
	{ID: "q-buzzword", Prompt: "The term 'buzzword bingo' was popularized in the 1990s by which comic strip?",
		Options: []string{"Calvin and Hobbes", "Dilbert", "Garfield", "XKCD"}, CorrectIndex: 1, Points: 250},
	{ID: "q-blackout", Prompt: "Covering every square on a bingo card is known as a…",
		Options: []string{"Sweep", "Blackout", "Shutout", "Grand line"}, CorrectIndex: 1, Points: 150},
	{ID: "q-two-lines", Prompt: "How many distinct winning lines exist on a 5x5 card (rows, columns, diagonals)?",
		Options: []string{"10", "11", "12", "13"}, CorrectIndex: 2, Points: 250},
	{ID: "q-balls-75", Prompt: "American bingo is traditionally played with how many balls?",
		Options: []string{"60", "75", "80", "90"}, CorrectIndex: 1, Points: 200},
	{ID: "q-lucky-number", Prompt: "In bingo-caller slang, 'two little ducks' refers to which number?",
		Options: []string{"2", "11", "22", "77"}, CorrectIndex: 2, Points: 200},
	{ID: "q-legs-eleven", Prompt: "'Legs eleven' is the caller's nickname for which number?",
		Options: []string{"7", "11", "21", "77"}, CorrectIndex: 1, Points: 150},
	{ID: "q-dauber", Prompt: "The ink marker used to daub numbers on paper bingo cards is called a…",
		Options: []string{"Dauber", "Stamper", "Blotter", "Swab"}, CorrectIndex: 0, Points: 150},
	{ID: "q-origin-year", Prompt: "Roughly when did bingo take its modern US form?",
		Options: []string{"1890s", "1920s-1930s", "1950s", "1970s"}, CorrectIndex: 1, Points: 250},
}
