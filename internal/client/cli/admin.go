package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vornexz/pay/internal/client/api"
)

// Admin is the holding site editing screen: portfolio companies,
// content sections, site config and logo uploads. The backend enforces
// the admin role, a member simply gets the rejection printed.
func (a *App) Admin(ctx context.Context) error {
	choice, err := getSimpleText(a.reader,
		"Admin: (1) companies  (2) edit company  (3) delete company  (4) edit content  (5) site config  (6) upload company logo  (enter to skip)",
		os.Stdout)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.adminCompanies(ctx)
	case "2":
		return a.adminEditCompany(ctx)
	case "3":
		return a.adminDeleteCompany(ctx)
	case "4":
		return a.adminEditContent(ctx)
	case "5":
		return a.adminSiteConfig(ctx)
	case "6":
		return a.adminUploadLogo(ctx)
	default:
		return nil
	}
}

func (a *App) adminCompanies(ctx context.Context) error {
	companies, err := a.api.Companies(ctx, a.token(), true)
	if err != nil {
		printlnFn("Could not load companies:", err.Error())
		return err
	}

	if len(companies) == 0 {
		printlnFn("No companies yet")
		return nil
	}

	for _, co := range companies {
		state := "active"
		if !co.Active {
			state = "inactive"
		}
		printlnFn(fmt.Sprintf("%s  %-24s  %-16s  [%s]", co.ID, co.Name, co.Segment, state))
	}
	return nil
}

func (a *App) promptCompany() (api.Company, error) {
	co := api.Company{}

	fields := []struct {
		prompt string
		dest   *string
	}{
		{"Name", &co.Name},
		{"Segment", &co.Segment},
		{"Description", &co.Description},
		{"Website", &co.Website},
	}

	for _, f := range fields {
		value, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return co, err
		}
		*f.dest = value
	}

	order, err := getSimpleText(a.reader, "Sort order", os.Stdout)
	if err != nil {
		return co, err
	}
	co.SortOrder, _ = strconv.Atoi(order)

	active, err := getSimpleText(a.reader, "Active? (y/n)", os.Stdout)
	if err != nil {
		return co, err
	}
	co.Active = active == "y" || active == "yes"

	return co, nil
}

func (a *App) adminEditCompany(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Company id (empty to create)", os.Stdout)
	if err != nil {
		return err
	}

	company, err := a.promptCompany()
	if err != nil {
		return err
	}

	if id == "" {
		created, err := a.api.CreateCompany(ctx, a.token(), company)
		if err != nil {
			printlnFn("Could not create company:", err.Error())
			return err
		}
		printlnFn("Created", created.ID)
		return nil
	}

	updated, err := a.api.UpdateCompany(ctx, a.token(), id, company)
	if err != nil {
		printlnFn("Could not update company:", err.Error())
		return err
	}
	printlnFn("Updated", updated.ID)
	return nil
}

func (a *App) adminDeleteCompany(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Company id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteCompany(ctx, a.token(), id); err != nil {
		printlnFn("Could not delete company:", err.Error())
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

func (a *App) adminEditContent(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Section key (hero, about, differentials, footer)", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	subtitle, err := getSimpleText(a.reader, "Subtitle", os.Stdout)
	if err != nil {
		return err
	}

	updated, err := a.api.UpdateContent(ctx, a.token(), api.ContentSection{
		Key:      key,
		Title:    title,
		Subtitle: subtitle,
	})
	if err != nil {
		printlnFn("Could not update content:", err.Error())
		return err
	}
	printlnFn("Updated section", updated.Key)
	return nil
}

func (a *App) adminSiteConfig(ctx context.Context) error {
	current, err := a.api.SiteConfig(ctx)
	if err != nil {
		printlnFn("Could not load site config:", err.Error())
		return err
	}

	name, err := getSimpleText(a.reader,
		fmt.Sprintf("Site name [%s]", current.SiteName), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.SiteName
	}

	color, err := getSimpleText(a.reader,
		fmt.Sprintf("Primary color [%s]", current.PrimaryColor), os.Stdout)
	if err != nil {
		return err
	}
	if color == "" {
		color = current.PrimaryColor
	}

	current.SiteName = name
	current.PrimaryColor = color

	updated, err := a.api.UpdateSiteConfig(ctx, a.token(), *current)
	if err != nil {
		printlnFn("Could not update site config:", err.Error())
		return err
	}
	printlnFn("Site config saved for", updated.SiteName)
	return nil
}

func (a *App) adminUploadLogo(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Image path", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("Could not read the file:", err.Error())
		return err
	}
	defer f.Close()

	url, err := a.api.UploadCompanyLogo(ctx, a.token(), filepath.Base(path), f)
	if err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}

	printlnFn("Uploaded to", url)
	return nil
}
