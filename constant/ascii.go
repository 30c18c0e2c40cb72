package constant

// AsciiArtLogo is the application banner shown on the root help page.
const AsciiArtLogo = `
  _
 | |_ ___  _   _ _ __ ___   ___(_)
 | __/ _ \| | | | '_ ` + "`" + ` _ \ / _ \ |
 | || (_) | |_| | | | | | |  __/ |
  \__\___/ \__,_|_| |_| |_|\___|_|
`
