package patterns

// Closed lists for U.S. federal politics. Case-sensitive unless noted at the rule.

var agencyAcronyms = []ListEntry{
	{"EPA", "Environmental Protection Agency"},
	{"FDA", "Food and Drug Administration"},
	{"FBI", "Federal Bureau of Investigation"},
	{"CIA", "Central Intelligence Agency"},
	{"IRS", "Internal Revenue Service"},
	{"DOJ", "Department of Justice"},
	{"DHS", "Department of Homeland Security"},
	{"DOD", "Department of Defense"},
	{"DoD", "Department of Defense"},
	{"HHS", "Department of Health and Human Services"},
	{"HUD", "Department of Housing and Urban Development"},
	{"DOE", "Department of Energy"},
	{"DOT", "Department of Transportation"},
	{"USDA", "Department of Agriculture"},
	{"FEMA", "Federal Emergency Management Agency"},
	{"FTC", "Federal Trade Commission"},
	{"FCC", "Federal Communications Commission"},
	{"SEC", "Securities and Exchange Commission"},
	{"FEC", "Federal Election Commission"},
	{"NASA", "National Aeronautics and Space Administration"},
	{"NSA", "National Security Agency"},
	{"ATF", "Bureau of Alcohol, Tobacco, Firearms and Explosives"},
	{"DEA", "Drug Enforcement Administration"},
	{"ICE", "Immigration and Customs Enforcement"},
	{"CBP", "Customs and Border Protection"},
	{"TSA", "Transportation Security Administration"},
	{"CDC", "Centers for Disease Control and Prevention"},
	{"NIH", "National Institutes of Health"},
	{"CMS", "Centers for Medicare & Medicaid Services"},
	{"OSHA", "Occupational Safety and Health Administration"},
	{"SSA", "Social Security Administration"},
	{"USPS", "United States Postal Service"},
	{"OMB", "Office of Management and Budget"},
	{"CBO", "Congressional Budget Office"},
	{"GAO", "Government Accountability Office"},
	{"VA", "Department of Veterans Affairs"},
	{"NLRB", "National Labor Relations Board"},
	{"FERC", "Federal Energy Regulatory Commission"},
	{"NRC", "Nuclear Regulatory Commission"},
	{"EEOC", "Equal Employment Opportunity Commission"},
	{"CFPB", "Consumer Financial Protection Bureau"},
	{"USCIS", "U.S. Citizenship and Immigration Services"},
	{"NOAA", "National Oceanic and Atmospheric Administration"},
	{"FAA", "Federal Aviation Administration"},
	{"SBA", "Small Business Administration"},
	{"USAID", "U.S. Agency for International Development"},
	{"DOGE", "Department of Government Efficiency"},
}

// agencyAliases are informal full names the structural rules miss
var agencyAliases = []ListEntry{
	{"State Department", "Department of State"},
	{"Justice Department", "Department of Justice"},
	{"Defense Department", "Department of Defense"},
	{"Treasury Department", "Department of the Treasury"},
	{"Commerce Department", "Department of Commerce"},
	{"Labor Department", "Department of Labor"},
	{"Education Department", "Department of Education"},
	{"Energy Department", "Department of Energy"},
	{"Interior Department", "Department of the Interior"},
	{"Homeland Security Department", "Department of Homeland Security"},
	{"Pentagon", "Department of Defense"},
	{"Treasury", "Department of the Treasury"},
	{"Centers for Disease Control and Prevention", ""},
	{"Centers for Medicare & Medicaid Services", ""},
	{"Centers for Medicare and Medicaid Services", ""},
	{"National Institutes of Health", ""},
	{"Immigration and Customs Enforcement", ""},
	{"Customs and Border Protection", ""},
	{"National Labor Relations Board", ""},
	{"Federal Reserve Board", ""},
}

var programAcronyms = []ListEntry{
	{"SNAP", "Supplemental Nutrition Assistance Program"},
	{"CHIP", "Children's Health Insurance Program"},
	{"TANF", "Temporary Assistance for Needy Families"},
	{"WIC", "Special Supplemental Nutrition Program for Women, Infants, and Children"},
	{"EITC", "Earned Income Tax Credit"},
	{"SSI", "Supplemental Security Income"},
	{"SSDI", "Social Security Disability Insurance"},
	{"LIHEAP", "Low Income Home Energy Assistance Program"},
	{"ACA", "Affordable Care Act"},
}

var entitlementPrograms = []ListEntry{
	{"Social Security", ""},
	{"Social Security Disability Insurance", ""},
	{"Medicare", ""},
	{"Medicare Advantage", ""},
	{"Medicare Part A", ""},
	{"Medicare Part B", ""},
	{"Medicare Part C", ""},
	{"Medicare Part D", ""},
	{"Medicaid", ""},
	{"Supplemental Nutrition Assistance Program", ""},
	{"Children's Health Insurance Program", ""},
	{"Temporary Assistance for Needy Families", ""},
	{"Earned Income Tax Credit", ""},
	{"Child Tax Credit", ""},
	{"Supplemental Security Income", ""},
	{"Pell Grant", ""},
	{"Pell Grants", ""},
	{"Section 8", ""},
	{"Head Start", ""},
	{"Obamacare", "Affordable Care Act"},
	{"food stamps", "Supplemental Nutrition Assistance Program"},
	{"Food Stamps", "Supplemental Nutrition Assistance Program"},
	{"unemployment insurance", ""},
	{"Unemployment Insurance", ""},
}

var politicalInstitutions = []ListEntry{
	{"House of Representatives", ""},
	{"U.S. House of Representatives", ""},
	{"U.S. House", "House of Representatives"},
	{"Senate", ""},
	{"U.S. Senate", "Senate"},
	{"Congress", ""},
	{"U.S. Congress", "Congress"},
	{"Supreme Court", ""},
	{"U.S. Supreme Court", "Supreme Court"},
	{"Federal Reserve", ""},
	{"the Fed", "Federal Reserve"},
	{"Democratic Party", ""},
	{"Republican Party", ""},
	{"Democratic National Committee", ""},
	{"Republican National Committee", ""},
	{"GOP", "Republican Party"},
	{"White House", ""},
	{"Oval Office", ""},
	{"Electoral College", ""},
	{"Capitol Hill", ""},
	{"House Freedom Caucus", ""},
	{"Freedom Caucus", "House Freedom Caucus"},
	{"Congressional Progressive Caucus", ""},
	{"Progressive Caucus", "Congressional Progressive Caucus"},
	{"Congressional Black Caucus", ""},
	{"Problem Solvers Caucus", ""},
}

var movements = []ListEntry{
	{"MAGA", "Make America Great Again"},
	{"Make America Great Again", ""},
	{"Black Lives Matter", ""},
	{"BLM", "Black Lives Matter"},
	{"Tea Party", ""},
	{"#MeToo", "MeToo"},
	{"MeToo", ""},
	{"Occupy Wall Street", ""},
	{"Defund the Police", ""},
	{"defund the police", "Defund the Police"},
	{"Stop the Steal", ""},
	{"America First", ""},
	{"Medicare for All", ""},
	{"Green New Deal", ""},
	{"Never Trump", ""},
	{"Never Trumpers", "Never Trump"},
	{"Women's March", ""},
	{"March for Our Lives", ""},
	{"Antifa", ""},
}

// policyPhrases match case-insensitively
var policyPhrases = []ListEntry{
	{"budget reconciliation", ""},
	{"reconciliation bill", ""},
	{"continuing resolution", ""},
	{"debt ceiling", ""},
	{"debt limit", ""},
	{"executive order", ""},
	{"executive orders", ""},
	{"cloture", ""},
	{"cloture vote", ""},
	{"filibuster", ""},
	{"government shutdown", ""},
	{"omnibus", ""},
	{"omnibus bill", ""},
	{"omnibus spending bill", ""},
	{"nuclear option", ""},
	{"unanimous consent", ""},
	{"discharge petition", ""},
	{"appropriations bill", ""},
	{"stopgap funding", ""},
	{"stopgap bill", ""},
	{"veto override", ""},
	{"motion to proceed", ""},
	{"motion to vacate", ""},
	{"impeachment inquiry", ""},
	{"articles of impeachment", ""},
	{"earmarks", ""},
	{"pocket veto", ""},
	{"line-item veto", ""},
	{"gerrymandering", ""},
	{"redistricting", ""},
}

// officeholderSurnames gate "<Name> Administration" so that "Biden Administration"
// is an agency but "New Administration" is not
var officeholderSurnames = []string{
	"Biden", "Trump", "Obama", "Bush", "Clinton", "Reagan", "Carter", "Ford",
	"Nixon", "Johnson", "Kennedy", "Eisenhower", "Truman", "Roosevelt",
	"Harris", "Vance", "Pence", "Cheney", "Gore", "Quayle", "Mondale",
	"Newsom", "DeSantis", "Abbott", "Hochul", "Whitmer", "Shapiro",
}

// leadingStopWords are trimmed from the front of capitalized phrases
var leadingStopWords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "Under": true, "Since": true, "After": true,
	"Before": true, "When": true, "While": true, "If": true, "But": true,
	"And": true, "Or": true, "So": true, "In": true, "On": true, "For": true,
	"Of": true, "With": true, "By": true, "To": true, "From": true, "At": true,
	"As": true, "Its": true, "Their": true, "His": true, "Her": true, "Our": true,
	"Both": true, "Each": true, "Every": true, "Today": true, "Yesterday": true,
	"Meanwhile": true, "Last": true, "Also": true, "How": true, "Why": true,
	"What": true, "Then": true, "Now": true, "Per": true, "Including": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// trailingStopWords end a structural agency or committee name
var trailingStopWords = map[string]bool{
	"Secretary": true, "Deputy": true, "Director": true, "Administrator": true,
	"Chief": true, "Official": true, "Officials": true, "Spokesman": true,
	"Spokeswoman": true, "Spokesperson": true, "Chairman": true, "Chairwoman": true,
	"Chair": true, "Ranking": true, "Member": true, "Members": true,
	"Republicans": true, "Democrats": true, "Staff": true, "Hearing": true,
	"Report": true, "Inspector": true, "Commissioner": true, "Said": true,
	"Says": true, "On": true, "Today": true, "Yesterday": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"January": true, "February": true, "March": true, "April": true, "May": true,
	"June": true, "July": true, "August": true, "September": true,
	"October": true, "November": true, "December": true,
}

// nonCongressionalCommittees are party and private bodies named "... Committee"
var nonCongressionalCommittees = []string{
	"National Committee",
	"Campaign Committee",
	"Action Committee",
	"Olympic Committee",
	"Nobel Committee",
	"Organizing Committee",
}

// nonAgencyPhrases match the agency suffix shape without being agencies
var nonAgencyPhrases = []string{
	"Oval Office",
	"Box Office",
	"Front Office",
	"Customer Service",
	"Memorial Service",
}
