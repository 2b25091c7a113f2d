package challenges

import (
	"fmt"
	"time"
)

func init() {
	c, err := buildCatalog(seedChallenges, seedAnswers)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in challenge catalog: %v", err))
	}
	cat = c
}

// seedChallenges is the built-in catalog, in presentation order.
var seedChallenges = []Challenge{
	// Level 0: first contact.
	{
		ID:    "welcome",
		Title: "The First Message",
		Prompt: `The screen flickers and displays a corrupted message:

    V2VsY29tZSB0byB0aGUgR2hvc3QgUHJvdG9jb2w=

This looks like Base64. Decode it to proceed.`,
		Level:      0,
		Category:   CategoryEncoding,
		XPReward:   50,
		SanityCost: 5,
		Solution:   "Welcome to the Ghost Protocol",
		Hints: []string{
			"Base64 is a common encoding scheme. Try a Base64 decoder.",
			"The answer is the decoded text exactly as it appears.",
		},
		Variants: []Variant{
			{
				ID:             "welcome_tutorial",
				Difficulty:     DifficultyBeginner,
				TitleSuffix:    " (Tutorial Mode)",
				PromptAppendix: "TUTORIAL: Base64 turns bytes into text using 64 symbols (A-Z, a-z, 0-9, + and /). A trailing '=' is padding.",
				Hints: []string{
					"Base64 uses 64 characters: A-Z, a-z, 0-9, + and /.",
					"Any online Base64 decoder will do.",
					"Or run: echo 'V2VsY29tZSB0byB0aGUgR2hvc3QgUHJvdG9jb2w=' | base64 -d",
				},
				XPMultiplier:     0.5,
				SanityMultiplier: 0.5,
			},
			{
				ID:               "welcome_speed",
				Difficulty:       DifficultyAdvanced,
				TitleSuffix:      " (Speed Mode)",
				Prompt:           "Decode quickly: V2VsY29tZSB0byB0aGUgR2hvc3QgUHJvdG9jb2w=",
				Hints:            []string{"Base64. Decode it."},
				XPMultiplier:     1.5,
				SanityMultiplier: 1.2,
				TimeLimit:        30 * time.Second,
			},
		},
	},
	{
		ID:    "file_discovery",
		Title: "Hidden Files",
		Prompt: `A note left on the terminal reads:

    "The password lives in a file that does not want to be seen.
     On Unix such files begin with a special character.
     The file is '.secret_key' and it contains: ghost_admin_2024"

What is the password?`,
		Level:      0,
		Category:   CategoryForensics,
		XPReward:   50,
		SanityCost: 5,
		Solution:   "ghost_admin_2024",
		Hints: []string{
			"Files starting with '.' are hidden on Unix systems.",
			"The password is: ghost_admin_2024",
		},
	},
	{
		ID:    "port_scan",
		Title: "The Open Door",
		Prompt: `A scan of a mysterious server shows:

    PORT      STATE  SERVICE
    22/tcp    open   ssh
    80/tcp    open   http
    443/tcp   open   https
    3306/tcp  open   mysql
    6666/tcp  open   unknown

One port stands out. What is the unusual port number?`,
		Level:      0,
		Category:   CategoryForensics,
		XPReward:   50,
		SanityCost: 5,
		Solution:   "6666",
		Hints: []string{
			"Look for the port that does not match a common service.",
			"Port 6666 is sometimes called the devil's port.",
		},
	},
	{
		ID:    "rot13_ghost",
		Title: "Rotational Spirits",
		Prompt: `A spectral message rotates before your eyes:

    Gur nafjre vf: EBGNGVBA

Each letter has been rotated 13 places (A<->N, B<->O, ...). Enter the answer it reveals.`,
		Level:      0,
		Category:   CategoryCryptography,
		XPReward:   50,
		SanityCost: 5,
		Solution:   "ROTATION",
		Hints: []string{
			"ROT13 shifts each letter by 13 positions.",
			"ROT13 is its own inverse: applying it twice gives the original.",
			"The answer is: ROTATION",
		},
	},
	{
		ID:    "binary_basics",
		Title: "The Binary Whisper",
		Prompt: `A ghost speaks in the language of machines:

    01000111 01001000 01001111 01010011 01010100

Each 8-bit group is one ASCII character. Decode the message.`,
		Level:      0,
		Category:   CategoryEncoding,
		XPReward:   50,
		SanityCost: 5,
		Solution:   "GHOST",
		Hints: []string{
			"Each 8-bit byte is one ASCII character.",
			"01000111 is 71 in decimal, which is 'G'.",
			"The answer is: GHOST",
		},
	},
	{
		ID:    "url_decode",
		Title: "Encoded Pathway",
		Prompt: `You intercept a URL in transit:

    https://ghost.corp/login?redirect=%2Fadmin%2Fsecrets%3Fkey%3DUNLOCK

The redirect parameter is percent-encoded. What is the decoded value of 'key'?`,
		Level:      0,
		Category:   CategoryEncoding,
		XPReward:   50,
		SanityCost: 5,
		Solution:   "UNLOCK",
		Hints: []string{
			"URL encoding: %2F = /, %3F = ?, %3D = =",
			"Look for what follows key%3D.",
			"The answer is: UNLOCK",
		},
	},
	{
		ID:    "practice_base64",
		Title: "Base64 Drill",
		Prompt: `A fresh transmission arrives:

    QUNDRVNTIEdSQU5URUQ=

Decode the Base64 string.`,
		Level:      0,
		Category:   CategoryEncoding,
		XPReward:   35,
		SanityCost: 3,
		Solution:   "ACCESS GRANTED",
		Hints: []string{
			"This is Base64 encoding.",
			"Use a Base64 decoder or 'base64 -d'.",
			"The message is two words that a locked door would like to hear.",
		},
	},
	{
		ID:    "practice_hex",
		Title: "Hex Drill",
		Prompt: `A hex string scrolls across the screen:

    4359424552

Decode it to ASCII text.`,
		Level:      0,
		Category:   CategoryEncoding,
		XPReward:   40,
		SanityCost: 4,
		Solution:   "CYBER",
		Hints: []string{
			"Hexadecimal uses base 16 (0-9, A-F).",
			"Each pair of hex digits is one ASCII character.",
			"43 is 'C'.",
		},
	},

	// Level 1: intermediate.
	{
		ID:    "caesar_cipher",
		Title: "Whispers in Code",
		Prompt: `An ancient terminal shows a shifted message:

    JSHZW SURWRFRO FRPSOHWH. WKH DQVZHU LV: FUBSWRJUDSKB

This is a Caesar cipher with a shift of 3. Enter the answer it reveals.`,
		Level:      1,
		Category:   CategoryCryptography,
		XPReward:   75,
		SanityCost: 8,
		Solution:   "CRYPTOGRAPHY",
		Hints: []string{
			"A Caesar cipher shifts every letter by a fixed amount.",
			"Shift each letter back by 3 (D->A, E->B, ...).",
			"The answer is: CRYPTOGRAPHY",
		},
		Variants: []Variant{
			{
				ID:             "caesar_cipher_guided",
				Difficulty:     DifficultyBeginner,
				TitleSuffix:    " (Guided)",
				PromptAppendix: "TUTORIAL: each letter was moved 3 places forward in the alphabet. Move every letter 3 places back to read it.",
				Hints: []string{
					"F becomes C, U becomes R, B becomes Y.",
					"Decode only the last word: FUBSWRJUDSKB.",
					"The first three letters are C, R, Y.",
				},
				XPMultiplier:     0.6,
				SanityMultiplier: 0.5,
			},
			{
				ID:               "caesar_cipher_unknown_shift",
				Difficulty:       DifficultyExpert,
				TitleSuffix:      " (Unknown Shift)",
				Prompt:           "The terminal displays: OLSSV DVYSK\n\nThe shift is unknown. Find it and decode the message.",
				Hints:            []string{"Try every shift from 1 to 25."},
				Solution:         "HELLO WORLD",
				XPMultiplier:     2.0,
				SanityMultiplier: 1.5,
				TimeLimit:        2 * time.Minute,
			},
		},
	},
	{
		ID:    "sql_injection_basics",
		Title: "Database Breach",
		Prompt: `A vulnerable login form builds this query:

    SELECT * FROM users WHERE username='[INPUT]' AND password='[PASS]'

What username payload makes the WHERE clause always true and comments out the password check?`,
		Level:      1,
		Category:   CategoryWeb,
		XPReward:   75,
		SanityCost: 10,
		Solution:   "' OR '1'='1' --",
		Hints: []string{
			"Think about how to make the WHERE clause always true.",
			"Use OR logic and comment out the rest with --",
			"Try: ' OR '1'='1' --",
		},
	},
	{
		ID:    "hex_decode",
		Title: "Hexadecimal Horror",
		Prompt: `A ghostly message appears in hexadecimal:

    48 45 58 41 44 45 43 49 4D 41 4C

Convert it to ASCII.`,
		Level:      1,
		Category:   CategoryEncoding,
		XPReward:   75,
		SanityCost: 8,
		Solution:   "HEXADECIMAL",
		Hints: []string{
			"Each pair of hex digits is one ASCII character.",
			"48 is 'H', 45 is 'E'.",
			"The answer is: HEXADECIMAL",
		},
		Variants: []Variant{
			{
				ID:               "hex_decode_stream",
				Difficulty:       DifficultyAdvanced,
				TitleSuffix:      " (Raw Stream)",
				Prompt:           "The bytes arrive without separators:\n\n    48455841444543494D414C\n\nDecode them.",
				Hints:            []string{"Split the stream into pairs."},
				XPMultiplier:     1.3,
				SanityMultiplier: 1.0,
			},
		},
	},
	{
		ID:    "jwt_token",
		Title: "Token of Trust",
		Prompt: `You intercept a JSON Web Token:

    eyJhbGciOiJub25lIn0.eyJ1c2VyIjoiZ3Vlc3QiLCJhZG1pbiI6ZmFsc2V9.

Its header reads {"alg":"none"} and the signature is empty.
What is this vulnerability called? (two words)`,
		Level:      1,
		Category:   CategoryWeb,
		XPReward:   75,
		SanityCost: 10,
		Solution:   "algorithm confusion",
		Hints: []string{
			"The 'alg' field is 'none', so no signature is checked.",
			"It is called 'Algorithm Confusion' or the 'None Algorithm' attack.",
			"Answer: algorithm confusion",
		},
	},
	{
		ID:    "path_traversal",
		Title: "Directory Descent",
		Prompt: `A web application serves files like this:

    https://ghost.corp/files?file=report.pdf

The 'file' parameter is not sanitized. What character sequence climbs one directory level?`,
		Level:      1,
		Category:   CategoryWeb,
		XPReward:   75,
		SanityCost: 8,
		Solution:   "../",
		Hints: []string{
			"Path traversal walks up the directory tree.",
			"Use '../' (or '..\\' on Windows).",
			"The answer is: ../",
		},
	},
	{
		ID:    "md5_collision",
		Title: "Hash Breakdown",
		Prompt: `An old authentication system stores unsalted MD5 hashes:

    5f4dcc3b5aa765d61d8327deb882cf99

This hash is extremely common. What password does it represent?`,
		Level:      1,
		Category:   CategoryCryptography,
		XPReward:   75,
		SanityCost: 10,
		Solution:   "password",
		Hints: []string{
			"This is one of the most common password hashes.",
			"Look it up in a public hash database.",
			"The answer is: password",
		},
	},
	{
		ID:    "command_injection",
		Title: "Shell Escape",
		Prompt: `A web app pings hosts with:

    ping -c 1 [USER_INPUT]

Input is not sanitized. What single character chains another command in a shell?`,
		Level:      1,
		Category:   CategoryWeb,
		XPReward:   75,
		SanityCost: 10,
		Solution:   ";",
		Hints: []string{
			"Shell metacharacters allow command chaining.",
			"The semicolon runs commands one after another.",
			"Common answers: ; or & or |",
		},
	},
	{
		ID:    "practice_rot",
		Title: "Mystery Rotation",
		Prompt: `A rotated message flickers:

    ZLJYLA JVKL

The rotation is not 13. Decode it.`,
		Level:      1,
		Category:   CategoryCryptography,
		XPReward:   60,
		SanityCost: 8,
		Solution:   "SECRET CODE",
		Hints: []string{
			"Try different rotations from 1 to 25.",
			"The shift is smaller than 10.",
			"Z becomes S with a shift of 7.",
		},
	},

	// Level 2: web, OSINT and steganography.
	{
		ID:    "http_header",
		Title: "Hidden Headers",
		Prompt: `A web response carries suspicious headers:

    HTTP/1.1 200 OK
    Content-Type: text/html
    X-Ghost-Token: R0hPU1RfVE9LRU4=
    Server: nginx

Decode X-Ghost-Token.`,
		Level:      2,
		Category:   CategoryWeb,
		XPReward:   100,
		SanityCost: 10,
		Solution:   "GHOST_TOKEN",
		Hints: []string{
			"The token looks like Base64.",
			"Decode the Base64 string to get the answer.",
		},
	},
	{
		ID:    "mobile_deeplink",
		Title: "Deep Link Discovery",
		Prompt: `A mobile app registers these deep links:

    myapp://profile/user/admin
    myapp://settings/debug/false
    myapp://secret/unlock/MOBILEHACK

Which value unlocks the secret feature?`,
		Level:      2,
		Category:   CategoryWeb,
		XPReward:   100,
		SanityCost: 10,
		Solution:   "MOBILEHACK",
		Hints: []string{
			"Look at the URL structure carefully.",
			"The answer is in the last deep link path.",
		},
	},
	{
		ID:    "dns_tunneling",
		Title: "Subdomain Secrets",
		Prompt: `Monitoring shows odd DNS queries:

    6461746131.ghost-protocol.com
    6461746132.ghost-protocol.com

The subdomains are hex-encoded ASCII. What does 6461746131 spell?`,
		Level:      2,
		Category:   CategoryForensics,
		XPReward:   100,
		SanityCost: 12,
		Solution:   "data1",
		Hints: []string{
			"DNS tunneling hides data in subdomain names.",
			"Convert each hex pair to ASCII.",
			"6461746131 is 'data1'.",
		},
	},
	{
		ID:    "xss_attack",
		Title: "Script Injection",
		Prompt: `A comment form echoes input unsanitized:

    <div class="comment">[USER_INPUT_HERE]</div>

Which HTML tag is the classic vehicle for Cross-Site Scripting? (tag name only)`,
		Level:      2,
		Category:   CategoryWeb,
		XPReward:   100,
		SanityCost: 10,
		Solution:   "script",
		Hints: []string{
			"XSS injects code that runs in the victim's browser.",
			"The tag is used to include JavaScript.",
			"The answer is: script",
		},
	},
	{
		ID:    "api_key_leak",
		Title: "Exposed Secrets",
		Prompt: `A public repository's history shows:

    commit 1: "Add API key for testing"
    commit 2: "Remove API key"

The key is gone from the code but still in the history.
What is this class of issue called? (two words)`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   100,
		SanityCost: 12,
		Solution:   "secret leak",
		Hints: []string{
			"Secrets committed to Git stay in history forever.",
			"Deleting the file does not rewrite the past.",
			"This is called a 'secret leak' or 'credential leak'.",
		},
	},
	{
		ID:    "session_hijack",
		Title: "Cookie Monster",
		Prompt: `You capture a session cookie set without HttpOnly or Secure:

    Set-Cookie: sessionid=abc123def456; Path=/

What is the attack called when someone steals and replays it? (_____ hijacking)`,
		Level:      2,
		Category:   CategoryWeb,
		XPReward:   100,
		SanityCost: 12,
		Solution:   "session hijacking",
		Hints: []string{
			"This attack takes over an active user session.",
			"An attacker uses your cookie to impersonate you.",
			"The answer is: session hijacking",
		},
	},
	{
		ID:    "cors_bypass",
		Title: "Origin Stories",
		Prompt: `An API responds with:

    Access-Control-Allow-Origin: *
    Access-Control-Allow-Credentials: true

What does CORS stand for?`,
		Level:      2,
		Category:   CategoryWeb,
		XPReward:   100,
		SanityCost: 10,
		Solution:   "Cross-Origin Resource Sharing",
		Hints: []string{
			"CORS is a browser security mechanism.",
			"It controls cross-domain requests.",
			"CORS = Cross-Origin Resource Sharing",
		},
	},
	{
		ID:    "osint_social_media",
		Title: "Digital Footprints",
		Prompt: `A target posts a coffee-shop photo. Its EXIF data includes:

    GPS: 40.7128 N, 74.0060 W

Which major city is this? (city name)`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   100,
		SanityCost: 12,
		Solution:   "New York",
		Hints: []string{
			"GPS coordinates in photos reveal exact locations.",
			"These coordinates belong to a very famous US city.",
			"40.7128 N, 74.0060 W is New York City.",
		},
	},
	{
		ID:    "osint_domain_recon",
		Title: "Domain Investigation",
		Prompt: `DNS records for ghost-corp.example include:

    TXT "v=spf1 include:_spf.google.com ~all"

Which email provider does the company use?`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   100,
		SanityCost: 10,
		Solution:   "Google",
		Hints: []string{
			"SPF records list the servers allowed to send mail.",
			"Look at the 'include:' domain.",
			"The SPF record includes Google's servers.",
		},
	},
	{
		ID:    "osint_email_analysis",
		Title: "Electronic Trail",
		Prompt: `A phishing mail arrives from security@gh0st-bank.com, imitating ghost-bank.com.

What is the technique of registering look-alike domains called? (one word, starts with 'typo')`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   100,
		SanityCost: 12,
		Solution:   "typosquatting",
		Hints: []string{
			"The attack relies on tiny spelling differences.",
			"Attackers register domains that look legitimate.",
			"The answer is: typosquatting",
		},
	},
	{
		ID:    "osint_geolocation",
		Title: "Location Triangulation",
		Prompt: `A suspect mentions "the tube", a big clock tower across the river,
British spelling, GMT+0 and a check-in at Borough Market.

Which city are they in?`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   100,
		SanityCost: 15,
		Solution:   "London",
		Hints: []string{
			"Find the country first, then the landmarks.",
			"'The tube', British spelling and GMT+0 point to the UK.",
			"Big Ben, the Thames and Borough Market: London.",
		},
	},
	{
		ID:    "osint_breach_investigation",
		Title: "Data Breach Analysis",
		Prompt: `A breached company claimed "industry-standard encryption" but stored
passwords as unsalted MD5.

What one-word practice was missing that defeats rainbow tables?`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   100,
		SanityCost: 12,
		Solution:   "salt",
		Hints: []string{
			"It makes identical passwords hash differently.",
			"It adds random data before hashing.",
			"The answer is: salt",
		},
	},
	{
		ID:    "osint_username_recon",
		Title: "Digital Identity Hunt",
		Prompt: `The handle Gh0stRunner42 shows up on GitHub, Twitter and Reddit,
and a LinkedIn profile leaks gr42@protonmail.com.

What technique links these accounts? (two words, first is 'username')`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   110,
		SanityCost: 12,
		Solution:   "username enumeration",
		Hints: []string{
			"Search for the same handle across platforms.",
			"It is also called account correlation.",
			"The answer is: username enumeration",
		},
	},
	{
		ID:    "osint_wayback_machine",
		Title: "Echoes from the Past",
		Prompt: `A company's site now claims it was never breached, but a 2023 archived
copy announces a breach affecting 10,000 accounts.

What is the web archive service commonly called? (two words, WBM)`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   110,
		SanityCost: 10,
		Solution:   "Wayback Machine",
		Hints: []string{
			"The service stores historical versions of websites.",
			"archive.org runs it.",
			"The answer is: Wayback Machine",
		},
	},
	{
		ID:    "osint_metadata_extraction",
		Title: "Hidden Data Trails",
		Prompt: `A leaked PDF is fully redacted, yet its properties list the author's
email, creation time, software and an internal comment.

What is this embedded information called? (one word)`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   110,
		SanityCost: 12,
		Solution:   "metadata",
		Hints: []string{
			"It travels inside files next to the visible content.",
			"For images it is called EXIF data.",
			"The answer is: metadata",
		},
	},
	{
		ID:    "osint_shodan_recon",
		Title: "The Internet Scanner",
		Prompt: `A search engine indexes open ports, webcams, ICS/SCADA systems and
service banners. Query "port:3389 country:US" returns millions of exposed
RDP servers.

What is it called? (one word, rhymes with "rodan")`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   110,
		SanityCost: 15,
		Solution:   "Shodan",
		Hints: []string{
			"It was created by John Matherly in 2009.",
			"It is named after the AI from System Shock.",
			"The answer is: Shodan",
		},
	},
	{
		ID:    "osint_pastebin_leak",
		Title: "Data Dump Discovery",
		Prompt: `A public text-sharing site hosts "DB_BACKUP_2024": thousands of
email:password lines.

What are such public credential dumps commonly called? (rhymes with "taste")`,
		Level:      2,
		Category:   CategoryOSINT,
		XPReward:   110,
		SanityCost: 12,
		Solution:   "paste",
		Hints: []string{
			"They are text files shared publicly.",
			"The most famous host is Pastebin.com.",
			"The answer is: paste (or paste dump)",
		},
	},
	{
		ID:    "steg_lsb_basics",
		Title: "The Hidden Pixel",
		Prompt: `A suspiciously large profile picture yields these least-significant bits:

    01001000 01101001 01100100 01100100 01100101 01101110
    01001101 01100101 01110011 01110011 01100001 01100111 01100101

What does the hidden message say?`,
		Level:      2,
		Category:   CategorySteganography,
		XPReward:   110,
		SanityCost: 10,
		Solution:   "HiddenMessage",
		Hints: []string{
			"Convert each 8-bit group to its ASCII character.",
			"01001000 = H, 01101001 = i, 01100100 = d ...",
			"The hidden message is: HiddenMessage",
		},
	},
	{
		ID:    "steg_exif_data",
		Title: "Metadata Secrets",
		Prompt: `A whistleblower's photo of an empty room carries this EXIF comment:

    Comment: Meeting-Room-B-Project-Blackout-Q4

What is the project code name?`,
		Level:      2,
		Category:   CategorySteganography,
		XPReward:   110,
		SanityCost: 8,
		Solution:   "Blackout",
		Hints: []string{
			"Read the Comment field carefully.",
			"The name follows 'Project-'.",
			"The project code name is: Blackout",
		},
	},
	{
		ID:    "steg_audio_spectrum",
		Title: "The Sound of Silence",
		Prompt: `An audio file sounds like static. Viewed as a spectrogram, letters
appear between 2 and 8 kHz: GHOSTPROTOCOL.

What message is hidden in the audio?`,
		Level:      2,
		Category:   CategorySteganography,
		XPReward:   120,
		SanityCost: 12,
		Solution:   "GHOSTPROTOCOL",
		Hints: []string{
			"The message is drawn in frequency over time.",
			"Look at the 2-8 kHz band.",
			"The hidden message is: GHOSTPROTOCOL",
		},
	},
	{
		ID:    "steg_whitespace",
		Title: "Invisible Ink",
		Prompt: `Indentation in a Python file mixes tabs and spaces. Reading TAB as 1
and SPACE as 0 gives 5-bit letters: 10000 00001 10011 10011.

Which word is hidden in the whitespace?`,
		Level:      2,
		Category:   CategorySteganography,
		XPReward:   115,
		SanityCost: 10,
		Solution:   "PASS",
		Hints: []string{
			"Decode each 5-bit group as a letter index (A=1).",
			"16 is P, 1 is A, 19 is S.",
			"The hidden word is: PASS",
		},
	},
	{
		ID:    "steg_file_concat",
		Title: "The Polyglot File",
		Prompt: `logo.png is 18KB larger than it should be. After the PNG IEND chunk
a ZIP header (50 4B 03 04) appears. The embedded credentials.txt reads:

    Username: ghost_admin
    Password: SecretPass2024

What is the password?`,
		Level:      2,
		Category:   CategorySteganography,
		XPReward:   120,
		SanityCost: 12,
		Solution:   "SecretPass2024",
		Hints: []string{
			"The hidden ZIP archive contains credentials.txt.",
			"Look at the password field.",
			"The password is: SecretPass2024",
		},
	},

	// Level 3: advanced.
	{
		ID:    "binary_exploit",
		Title: "Buffer Overflow Ghost",
		Prompt: `A C program does:

    char buffer[8];
    strcpy(buffer, user_input);

There is no bounds check. What is this classic vulnerability called?`,
		Level:      3,
		Category:   CategoryBinary,
		XPReward:   125,
		SanityCost: 15,
		Solution:   "buffer overflow",
		Hints: []string{
			"This is a memory corruption vulnerability.",
			"The vulnerability is called a 'buffer overflow'.",
		},
	},
	{
		ID:    "reverse_engineering",
		Title: "Decompiled Secrets",
		Prompt: `Decompiled pseudocode reads:

    if (input XOR 0x42 == 0x2D) {
        grant_access();
    }

What single character grants access?`,
		Level:      3,
		Category:   CategoryReverse,
		XPReward:   125,
		SanityCost: 15,
		Solution:   "o",
		Hints: []string{
			"XOR is reversible: if A XOR B = C then A = B XOR C.",
			"Compute 0x2D XOR 0x42.",
			"The answer is 'o' (ASCII 111, 0x6F).",
		},
	},
	{
		ID:    "format_string",
		Title: "String Exploitation",
		Prompt: `A program calls:

    printf(user_input);

instead of printf("%s", user_input). What is this vulnerability called?`,
		Level:      3,
		Category:   CategoryBinary,
		XPReward:   125,
		SanityCost: 15,
		Solution:   "format string vulnerability",
		Hints: []string{
			"It involves printf and format specifiers.",
			"%x and %n let an attacker read and write memory.",
			"The answer is: format string vulnerability",
		},
	},
	{
		ID:    "race_condition",
		Title: "Time Paradox",
		Prompt: `A program checks access to a file and then opens it. In between, an
attacker swaps the file for a symlink to a privileged one.

What is this timing vulnerability called? (_____ condition)`,
		Level:      3,
		Category:   CategoryBinary,
		XPReward:   125,
		SanityCost: 15,
		Solution:   "race condition",
		Hints: []string{
			"It exploits the gap between two operations.",
			"Also known as TOCTOU.",
			"The answer is: race condition",
		},
	},
	{
		ID:    "integer_overflow",
		Title: "Number Nightmare",
		Prompt: `A program allocates:

    unsigned char size = user_input;   // max 255
    char *buf = malloc(size + 10);

With input 250 the result wraps to 4. What is this called? (_____ overflow)`,
		Level:      3,
		Category:   CategoryBinary,
		XPReward:   125,
		SanityCost: 15,
		Solution:   "integer overflow",
		Hints: []string{
			"Numbers exceeded their maximum value.",
			"Values wrap back around to zero.",
			"The answer is: integer overflow",
		},
	},
	{
		ID:    "steg_dna_encoding",
		Title: "Genetic Message",
		Prompt: `A synthetic DNA strand hides text using two bits per base
(A=00, T=01, C=10, G=11).

What four-letter tech word is encoded?`,
		Level:      3,
		Category:   CategorySteganography,
		XPReward:   150,
		SanityCost: 15,
		Solution:   "DATA",
		Hints: []string{
			"Convert pairs of bases to bits.",
			"Group the bits into bytes and read them as ASCII.",
			"The hidden message is: DATA",
		},
	},
	{
		ID:    "malware_obfuscation",
		Title: "Layered Deception",
		Prompt: `An obfuscated script nests eval(atob(...)) three layers deep. The
innermost layer is:

    atob('bWFsd2FyZQ==')

What is the final decoded string?`,
		Level:      3,
		Category:   CategoryMalware,
		XPReward:   140,
		SanityCost: 15,
		Solution:   "malware",
		Hints: []string{
			"Peel the layers from the inside out.",
			"Each layer is Base64 (atob).",
			"The final decoded string is: malware",
		},
	},
	{
		ID:    "malware_behavior",
		Title: "Behavioral Signature",
		Prompt: `A compromised host shows a Run-key persistence entry, C2 traffic,
process injection, Defender being disabled, and documents renamed to *.ghost
after encryption.

Which category of malware is this? (one word)`,
		Level:      3,
		Category:   CategoryMalware,
		XPReward:   150,
		SanityCost: 18,
		Solution:   "ransomware",
		Hints: []string{
			"The files are encrypted and payment is likely demanded.",
			"The .ghost extension is the tell.",
			"This is: ransomware",
		},
	},
	{
		ID:    "malware_sandbox",
		Title: "Sandbox Escape Artist",
		Prompt: `A sample refuses to run in your lab: it sleeps for minutes, looks for
VM MAC addresses and debugger processes, and checks for analysis tools.

What are these techniques called? (_____ evasion)`,
		Level:      3,
		Category:   CategoryMalware,
		XPReward:   150,
		SanityCost: 20,
		Solution:   "sandbox evasion",
		Hints: []string{
			"The malware is detecting that it is being analyzed.",
			"It checks for virtualization and sandboxes.",
			"These are called: sandbox evasion techniques",
		},
	},
	{
		ID:    "iot_default_creds",
		Title: "The Unchanged Password",
		Prompt: `A GhostCam 3000 on the home network still answers its web login.
The vendor manual lists: username admin, password admin.

What is the default password?`,
		Level:      3,
		Category:   CategoryIoT,
		XPReward:   140,
		SanityCost: 15,
		Solution:   "admin",
		Hints: []string{
			"Check the manufacturer documentation.",
			"IoT devices often reuse the username as password.",
			"The default password is: admin",
		},
	},
	{
		ID:    "iot_firmware",
		Title: "Firmware Secrets",
		Prompt: `Running strings on a smart hub's firmware image prints:

    WIFI_SSID=GhostHome
    ADMIN_PASSWORD=SuperSecret2024
    DEBUG_UART=enabled

What is the hardcoded admin password?`,
		Level:      3,
		Category:   CategoryIoT,
		XPReward:   140,
		SanityCost: 15,
		Solution:   "SuperSecret2024",
		Hints: []string{
			"Look for ADMIN_PASSWORD in the strings output.",
			"It is listed among the firmware secrets.",
			"The admin password is: SuperSecret2024",
		},
	},
	{
		ID:    "iot_mqtt",
		Title: "Unencrypted Whispers",
		Prompt: `Plain MQTT traffic on port 1883 carries:

    topic: home/frontdoor/lock
    payload: {"action":"unlock","pin":"1234"}

What is the door lock PIN?`,
		Level:      3,
		Category:   CategoryIoT,
		XPReward:   150,
		SanityCost: 15,
		Solution:   "1234",
		Hints: []string{
			"Read the front door lock message.",
			"The PIN is in the 'pin' field of the JSON payload.",
			"The door lock PIN is: 1234",
		},
	},

	// Level 4: the end.
	{
		ID:    "final_protocol",
		Title: "The Ghost's True Name",
		Prompt: `A final riddle appears:

    "I am the protocol that haunts this machine.
     My name is hidden in the challenges you've seen."

What is the Ghost Protocol's true name?`,
		Level:      4,
		Category:   CategoryCryptography,
		XPReward:   200,
		SanityCost: 20,
		Solution:   "PHANTOM",
		Hints: []string{
			"Look back at every challenge you completed.",
			"Take the first letter of each challenge ID.",
			"The pattern spells 'PROTOCOL' or something close to it.",
		},
	},
}

// seedAnswers is the answer dispatch table: one matcher per challenge id.
// Variants not listed here accept their concept's answers.
var seedAnswers = map[string]Matcher{
	"welcome":         Answers(Exact("welcome to the ghost protocol")),
	"file_discovery":  Answers(Exact("ghost_admin_2024")),
	"port_scan":       Answers(Exact("6666")),
	"rot13_ghost":     Answers(Exact("rotation")),
	"binary_basics":   Answers(Exact("ghost")),
	"url_decode":      Answers(Exact("unlock")),
	"practice_base64": Answers(Exact("access granted")),
	"practice_hex":    Answers(Exact("cyber")),

	"caesar_cipher":               Answers(Exact("cryptography")),
	"caesar_cipher_unknown_shift": Answers(Contains("hello world", "helloworld")),
	"sql_injection_basics": Answers(
		Contains("'or'1'='1'--", "'or1=1--"),
		Exact("admin'--"),
	).With(RemoveSpaces | KeepDelimiters),
	"hex_decode":        Answers(Exact("hexadecimal")),
	"jwt_token":         Answers(Exact("algorithm confusion", "none algorithm", "alg none")).With(SeparatorsToSpace),
	"path_traversal":    Answers(Exact("../", "..", `..\`)).With(RemoveSpaces | KeepDelimiters),
	"md5_collision":     Answers(Exact("password")),
	"command_injection": Answers(Exact(";", "semicolon", "&", "|", "&&", "||")).With(KeepDelimiters),
	"practice_rot":      Answers(Exact("secret code", "secretcode")),

	"http_header":     Answers(Exact("ghost_token")),
	"mobile_deeplink": Answers(Exact("mobilehack")),
	"dns_tunneling":   Answers(Exact("data1", "data")),
	"xss_attack":      Answers(Exact("script", "<script>", "script>")).With(KeepDelimiters),
	"api_key_leak": Answers(
		ContainsAll("secret", "leak"),
		Exact("credential leak", "key leak", "secret exposure"),
	).With(SeparatorsToSpace),
	"session_hijack": Answers(Exact("session hijacking", "session hijack", "cookie hijacking")).With(SeparatorsToSpace),
	"cors_bypass": Answers(
		Exact("cors", "cross origin resource sharing"),
		ContainsAll("cross", "origin", "resource"),
	).With(SeparatorsToSpace),
	"osint_social_media":         Answers(Exact("new york", "new york city", "nyc", "manhattan")),
	"osint_domain_recon":         Answers(Exact("google", "gmail", "g suite", "google workspace")),
	"osint_email_analysis":       Answers(Exact("typosquatting", "typosquat", "cybersquatting")),
	"osint_geolocation":          Answers(Exact("london", "london uk", "london england")),
	"osint_breach_investigation": Answers(Exact("salt", "salting", "hashing salt", "password salt")),
	"osint_username_recon": Answers(
		Exact("username enumeration", "username recon", "username reconnaissance"),
	).With(SeparatorsToSpace),
	"osint_wayback_machine": Answers(
		Exact("wayback machine", "internet archive", "web archive", "archive.org"),
	).With(SeparatorsToSpace),
	"osint_metadata_extraction": Answers(Exact("metadata", "exif", "exif data", "meta data", "file metadata")),
	"osint_shodan_recon":        Answers(Exact("shodan", "shodan.io")),
	"osint_pastebin_leak": Answers(
		Exact("paste", "pastes", "paste dump", "paste site", "pastebin dump", "data dump", "credential dump"),
	).With(SeparatorsToSpace),
	"steg_lsb_basics": Answers(
		Exact("hiddenmessage", "hidden message"),
		ContainsAll("hidden", "message"),
	).With(SeparatorsToSpace),
	"steg_exif_data": Answers(Contains("blackout")).With(SeparatorsToSpace),
	"steg_audio_spectrum": Answers(
		Exact("ghostprotocol", "ghost protocol"),
		ContainsAll("ghost", "protocol"),
	).With(SeparatorsToSpace),
	"steg_whitespace": Answers(Contains("pass")).With(SeparatorsToSpace),
	"steg_file_concat": Answers(
		Exact("secretpass2024", "secret pass 2024"),
		ContainsAll("secret", "pass"),
	).With(SeparatorsToSpace),

	"binary_exploit":      Answers(Exact("buffer overflow", "bufferoverflow", "overflow")),
	"reverse_engineering": Answers(Exact("o", "111", "0x6F", "0x6f", "\\x6f", "\\x6F")).With(CaseSensitive),
	"format_string":       Answers(Contains("format string")).With(SeparatorsToSpace),
	"race_condition":      Answers(Exact("race condition", "toctou", "time of check time of use")).With(SeparatorsToSpace),
	"integer_overflow":    Answers(Exact("integer overflow", "integer wraparound", "arithmetic overflow")).With(SeparatorsToSpace),
	"steg_dna_encoding":   Answers(Exact("code", "gene"), Contains("data")),
	"malware_obfuscation": Answers(Contains("malware")),
	"malware_behavior":    Answers(Contains("ransom")),
	"malware_sandbox": Answers(
		Exact("sandbox detection", "vm evasion", "anti analysis"),
		ContainsAll("sandbox", "evasion"),
	).With(SeparatorsToSpace),
	"iot_default_creds": Answers(Exact("default"), Contains("admin")),
	"iot_firmware": Answers(
		Contains("supersecret"),
		ContainsAll("super", "secret"),
	).With(SeparatorsToSpace),
	"iot_mqtt": Answers(Contains("1234")).With(SeparatorsToSpace | RemoveSpaces),

	"final_protocol": Answers(Contains("phantom", "freedom", "protocol")),
}
