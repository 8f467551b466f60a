package cli

import (
	"context"
	"fmt"
	"os"
)

// AddNote reads a multi-line note body and stores it under the session
// owner.
func (a *App) AddNote(ctx context.Context) error {
	content, err := GetMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.vaultService.AddNote(ctx, a.session, content); err != nil {
		fmt.Println("Could not add note:", err)
		return err
	}

	fmt.Println("Note saved")
	return nil
}

// ListNotes prints the session owner's notes in insertion order.
func (a *App) ListNotes(ctx context.Context) error {
	notes, err := a.vaultService.Notes(ctx, a.session)
	if err != nil {
		fmt.Println("Could not list notes:", err)
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet")
		return nil
	}

	for i, note := range notes {
		fmt.Printf("%d. [%s] %s\n", i+1, note.CreatedAt.Format("2006-01-02 15:04"), note.Content)
	}
	return nil
}

// AddFile stores a metadata-only file reference under the session owner.
func (a *App) AddFile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter file name", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.vaultService.AddFileRef(ctx, a.session, name); err != nil {
		fmt.Println("Could not add file reference:", err)
		return err
	}

	fmt.Println("File reference saved")
	return nil
}

// ListFiles prints the session owner's file references in insertion order.
func (a *App) ListFiles(ctx context.Context) error {
	refs, err := a.vaultService.FileRefs(ctx, a.session)
	if err != nil {
		fmt.Println("Could not list files:", err)
		return err
	}

	if len(refs) == 0 {
		fmt.Println("No files yet")
		return nil
	}

	for i, ref := range refs {
		fmt.Printf("%d. [%s] %s\n", i+1, ref.AddedAt.Format("2006-01-02 15:04"), ref.Name)
	}
	return nil
}
