// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	NotAnArchiveId Id = iota + 1
	CorruptArchiveId
	BadSourceFileId
	UnsafeEntryNameId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	notAnArchiveIssue = &Issue{
		id: NotAnArchiveId,
		mdMsg: `
# Not a DCA archive!

The input file does not start with the ~DCA~ magic header, so it is not
a Dumb Cat Archive (or it has been damaged at the very beginning).

## Things you can try:
- Check that you passed the right file:
~~~
$ dca --list archive.dca
~~~
- If the file was transferred from somewhere, re-download it; a
  truncated or text-mode transfer destroys the header
- If you meant to CREATE an archive from this file, force compress mode:
~~~
$ dca --compress file --output archive.dca
~~~`,
	}

	corruptArchiveIssue = &Issue{
		id: CorruptArchiveId,
		mdMsg: `
# Corrupt archive!

The archive starts with a valid header but its structure breaks midway:
a size line is not a decimal number, a payload is shorter than declared,
or an entry terminator is missing.

The error message above names the failing section, the entry and the
byte offset.

## Things you can try:
- Re-create or re-download the archive; DCA has no redundancy and no
  repair mode
- List the archive to see how far it decodes:
~~~
$ dca --list archive.dca
~~~
- Files extracted before the failure are kept; the one being written
  when decoding stopped may be truncated`,
	}

	badSourceFileIssue = &Issue{
		id: BadSourceFileId,
		mdMsg: `
# Cannot read a source file!

One of the files to be packed could not be opened or read.

## Things you can try:
- Check the path for typos
- Check the file's permissions:
~~~
$ ls -l <file>
~~~
- Note that DCA archives are flat: directories cannot be packed, only
  regular files`,
	}

	unsafeEntryNameIssue = &Issue{
		id: UnsafeEntryNameId,
		mdMsg: `
# Unsafe entry name!

The archive contains an entry whose name includes a path separator or
a parent-directory reference. Extracting it could write outside the
destination directory, so it is refused.

## Things you can try:
- Inspect the entry names without extracting:
~~~
$ dca --list archive.dca
~~~
- Only extract archives from sources you trust; the format itself does
  not forbid such names, so the check happens on extraction`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your dca configuration file exists but could not be parsed.

## Things you can try:
- Check the TOML syntax of the file:
~~~
$ dca config path
~~~
- Recreate a default configuration:
~~~
$ dca config init
~~~
- Run without a config file; every setting has a built-in default`,
	}

	issues = map[Id]*Issue{
		notAnArchiveIssue.Id():     notAnArchiveIssue,
		corruptArchiveIssue.Id():   corruptArchiveIssue,
		badSourceFileIssue.Id():    badSourceFileIssue,
		unsafeEntryNameIssue.Id():  unsafeEntryNameIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return slices.Collect(maps.Values(issues))
}

func Get(id Id) *Issue {
	return issues[id]
}
