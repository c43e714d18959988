package signature

// defaultFileSignatureRows is the built-in file-type signature table. Each
// pattern is evaluated only against the byte window [offset_min, offset_max)
// of the buffer's leading bytes. Rows earlier in the table win offset ties,
// matching Catalogue.Identify's documented tiebreak.
var defaultFileSignatureRows = []FileSignatureRow{
	{
		Extension: "jpg", MIME: "image/jpeg", Description: "JPEG image data",
		OffsetMin: 0, OffsetMax: 4, Pattern: `^\xff\xd8\xff`,
	},
	{
		Extension: "png", MIME: "image/png", Description: "PNG image data",
		OffsetMin: 0, OffsetMax: 8, Pattern: `^\x89PNG\r\n\x1a\n`,
	},
	{
		Extension: "gif", MIME: "image/gif", Description: "GIF image data",
		OffsetMin: 0, OffsetMax: 6, Pattern: `^GIF8[79]a`,
	},
	{
		Extension: "pdf", MIME: "application/pdf", Description: "PDF document",
		OffsetMin: 0, OffsetMax: 5, Pattern: `^%PDF-`,
	},
	{
		Extension: "zip", MIME: "application/zip", Description: "Zip archive data",
		OffsetMin: 0, OffsetMax: 4, Pattern: `^PK\x03\x04`,
	},
	{
		Extension: "gz", MIME: "application/gzip", Description: "gzip compressed data",
		OffsetMin: 0, OffsetMax: 2, Pattern: `^\x1f\x8b`,
	},
	{
		Extension: "elf", MIME: "application/x-executable", Description: "ELF executable",
		OffsetMin: 0, OffsetMax: 4, Pattern: `^\x7fELF`,
	},
	{
		Extension: "exe", MIME: "application/x-dosexec", Description: "PE32 executable",
		OffsetMin: 0, OffsetMax: 2, Pattern: `^MZ`,
	},
	{
		Extension: "bmp", MIME: "image/bmp", Description: "BMP image data",
		OffsetMin: 0, OffsetMax: 2, Pattern: `^BM`,
	},
	{
		Extension: "wasm", MIME: "application/wasm", Description: "WebAssembly binary module",
		OffsetMin: 0, OffsetMax: 4, Pattern: `^\x00asm`,
	},
	{
		Extension: "sqlite", MIME: "application/vnd.sqlite3", Description: "SQLite 3.x database",
		OffsetMin: 0, OffsetMax: 16, Pattern: `^SQLite format 3\x00`,
	},
	{
		Extension: "class", MIME: "application/java-vm", Description: "Java class data",
		OffsetMin: 0, OffsetMax: 4, Pattern: `^\xca\xfe\xba\xbe`,
	},
	{
		Extension: "7z", MIME: "application/x-7z-compressed", Description: "7-zip archive data",
		OffsetMin: 0, OffsetMax: 6, Pattern: `^7z\xbc\xaf\x27\x1c`,
	},
	{
		Extension: "xml", MIME: "application/xml", Description: "XML document text",
		OffsetMin: 0, OffsetMax: 6, Pattern: `^<\?xml`, Textual: true,
	},
	{
		Extension: "json", MIME: "application/json", Description: "JSON text data",
		OffsetMin: 0, OffsetMax: 1, Pattern: `^[\{\[]`, Textual: true,
	},
}
