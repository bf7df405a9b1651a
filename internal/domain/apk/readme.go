package apk

// readme is written verbatim into every package.
const readme = "# JP Hosting APK Package\n" +
	"\n" +
	"## 🚀 Build APK Online\n" +
	"\n" +
	"### Option 1: PhoneGap Build (Recommended)\n" +
	"1. Create account at https://build.phonegap.com\n" +
	"2. Upload this folder as ZIP\n" +
	"3. Build APK online\n" +
	"4. Download your APK\n" +
	"\n" +
	"### Option 2: Capacitor Cloud Build\n" +
	"1. Go to https://capacitorjs.com/\n" +
	"2. Use online build service\n" +
	"3. Upload this package\n" +
	"4. Get APK download link\n" +
	"\n" +
	"### Option 3: Local Build (if you have Android Studio)\n" +
	"1. Install Capacitor CLI: `npm install -g @capacitor/cli`\n" +
	"2. Run: `npx cap add android`\n" +
	"3. Run: `npx cap sync android`\n" +
	"4. Open in Android Studio: `npx cap open android`\n" +
	"5. Build APK\n" +
	"\n" +
	"## 📱 Features in Your APK:\n" +
	"- 🎮 Advanced Server Control Panel\n" +
	"- 🌐 Custom Domain Management (free .hosting.jp + paid domains)\n" +
	"- 💰 UPI Payment Integration\n" +
	"- 📊 Real-time Server Monitoring\n" +
	"- 📁 File Manager with Editor\n" +
	"- 🔐 Persistent Authentication\n" +
	"- 🎨 Beautiful Modern UI\n" +
	"\n" +
	"## 🆓 Free Plan:\n" +
	"Get your first server free for 7 days + free .hosting.jp domain!\n"

// Readme returns the instructions document shipped inside the package.
func Readme() string {
	return readme
}
