package cli

import "trivia-engine/internal/domain"

// sampleCatalog provides the built-in 24-question set used when no Postgres
// catalog is configured (dev/demo). Content mirrors the football trivia the
// product ships with.
func sampleCatalog() []domain.Question {
	return []domain.Question{
		{ID: "t01", Ordinal: 1, Prompt: "How many points is a touchdown worth?",
			Options:       []string{"3", "6", "7", "2"},
			CorrectOption: 1, FunFact: "The extra point kick came later, borrowed from rugby's conversion."},
		{ID: "t02", Ordinal: 2, Prompt: "How many players does each team field on offense?",
			Options:       []string{"9", "10", "11", "12"},
			CorrectOption: 2, FunFact: "A 12th man on the field draws a five-yard penalty."},
		{ID: "t03", Ordinal: 3, Prompt: "How long is a regulation football field, goal line to goal line?",
			Options:       []string{"100 yards", "110 yards", "120 yards", "90 yards"},
			CorrectOption: 0, FunFact: "Counting both end zones the field stretches 120 yards."},
		{ID: "t04", Ordinal: 4, Prompt: "What is it called when the defense tackles the ball carrier in his own end zone?",
			Options:       []string{"Touchback", "Safety", "Sack", "Turnover"},
			CorrectOption: 1, FunFact: "A safety scores two points and forces a free kick."},
		{ID: "t05", Ordinal: 5, Prompt: "How many downs does the offense get to gain ten yards?",
			Options:       []string{"3", "4", "5", "2"},
			CorrectOption: 1, FunFact: "Canadian football makes do with only three downs."},
		{ID: "t06", Ordinal: 6, Prompt: "Which position typically throws the most passes?",
			Options:       []string{"Running back", "Tight end", "Quarterback", "Fullback"},
			CorrectOption: 2, FunFact: "A halfback pass is a classic trick play precisely because it breaks this rule."},
		{ID: "t07", Ordinal: 7, Prompt: "How many points is a field goal worth?",
			Options:       []string{"1", "2", "3", "6"},
			CorrectOption: 2, FunFact: "The longest field goal ever made in the NFL traveled 66 yards."},
		{ID: "t08", Ordinal: 8, Prompt: "What shape is a football?",
			Options:       []string{"Sphere", "Prolate spheroid", "Ellipsoid disc", "Ovoid cylinder"},
			CorrectOption: 1, FunFact: "Early footballs were closer to rugby balls, rounder and harder to throw."},
		{ID: "t09", Ordinal: 9, Prompt: "How many teams make up the NFL?",
			Options:       []string{"28", "30", "32", "34"},
			CorrectOption: 2, FunFact: "The league reached 32 teams when the Texans joined in 2002."},
		{ID: "t10", Ordinal: 10, Prompt: "What is the championship game of the NFL called?",
			Options:       []string{"The Grand Final", "The Super Bowl", "The Title Bowl", "The Pro Bowl"},
			CorrectOption: 1, FunFact: "The Pro Bowl is the all-star exhibition, not the championship."},
		{ID: "t11", Ordinal: 11, Prompt: "How many minutes are in a regulation NFL quarter?",
			Options:       []string{"10", "12", "15", "20"},
			CorrectOption: 2, FunFact: "College and pro quarters are 15 minutes; high school plays 12."},
		{ID: "t12", Ordinal: 12, Prompt: "What penalty is called for pulling a ball carrier down by the inside of his shoulder pads from behind?",
			Options:       []string{"Holding", "Clipping", "Horse collar tackle", "Facemask"},
			CorrectOption: 2, FunFact: "The rule was added in 2005 after a rash of leg injuries."},
		{ID: "t13", Ordinal: 13, Prompt: "Which play starts every possession change after a score?",
			Options:       []string{"Punt", "Kickoff", "Snap", "Onside kick"},
			CorrectOption: 1, FunFact: "An onside kick is just a kickoff the kicking team hopes to recover."},
		{ID: "t14", Ordinal: 14, Prompt: "What is a two-point conversion?",
			Options: []string{"A 50-yard field goal", "Scoring from the 2-yard line after a touchdown",
				"Two field goals in one quarter", "A defensive touchdown"},
			CorrectOption: 1, FunFact: "The NFL only adopted the two-point try in 1994, decades after college."},
		{ID: "t15", Ordinal: 15, Prompt: "What does a yellow flag on the field signal?",
			Options:       []string{"Timeout", "Penalty", "Touchdown review", "Injury"},
			CorrectOption: 1, FunFact: "Officials once used white flags, switched to yellow for visibility."},
		{ID: "t16", Ordinal: 16, Prompt: "How many challenges does a head coach get per game?",
			Options:       []string{"1", "2", "3", "Unlimited"},
			CorrectOption: 1, FunFact: "Win both and a third challenge is awarded."},
		{ID: "t17", Ordinal: 17, Prompt: "Which position lines up directly over the ball?",
			Options:       []string{"Guard", "Tackle", "Center", "Tight end"},
			CorrectOption: 2, FunFact: "The center touches the ball on every offensive snap."},
		{ID: "t18", Ordinal: 18, Prompt: "What is it called when the quarterback is tackled behind the line of scrimmage?",
			Options:       []string{"A stuff", "A sack", "A blitz", "A pancake"},
			CorrectOption: 1, FunFact: "Deacon Jones coined the term; sacks became official stats only in 1982."},
		{ID: "t19", Ordinal: 19, Prompt: "How many yards is the offense pushed back for a false start?",
			Options:       []string{"5", "10", "15", "Loss of down"},
			CorrectOption: 0, FunFact: "It is one of the few penalties that always stops the clock."},
		{ID: "t20", Ordinal: 20, Prompt: "What does the term 'pick six' mean?",
			Options: []string{"Six sacks in a game", "An interception returned for a touchdown",
				"Six straight completions", "A six-man blitz"},
			CorrectOption: 1, FunFact: "'Pick' is shorthand for interception, 'six' for the touchdown points."},
		{ID: "t21", Ordinal: 21, Prompt: "Which team won the first Super Bowl?",
			Options:       []string{"Kansas City Chiefs", "Green Bay Packers", "Chicago Bears", "New York Jets"},
			CorrectOption: 1, FunFact: "Vince Lombardi's Packers beat the Chiefs 35-10 in January 1967."},
		{ID: "t22", Ordinal: 22, Prompt: "What is the area between the goal line and the end line called?",
			Options:       []string{"The pocket", "The end zone", "The neutral zone", "The red zone"},
			CorrectOption: 1, FunFact: "The red zone is the stretch inside the opponent's 20-yard line."},
		{ID: "t23", Ordinal: 23, Prompt: "How many officials work a standard NFL game?",
			Options:       []string{"5", "6", "7", "8"},
			CorrectOption: 2, FunFact: "Each of the seven has a distinct title, from referee to back judge."},
		{ID: "t24", Ordinal: 24, Prompt: "What trophy is awarded to the Super Bowl champion?",
			Options: []string{"The Halas Trophy", "The Hunt Trophy", "The Lombardi Trophy",
				"The Rozelle Trophy"},
			CorrectOption: 2, FunFact: "Tiffany & Co. crafts a new sterling silver Lombardi Trophy every year."},
	}
}
